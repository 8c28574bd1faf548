package store

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of write events most editors and
// copy tools produce into a single reload.
const reloadDebounce = 500 * time.Millisecond

// DatasetWatcher watches a CSV dataset directory and signals when one of
// the table files changes.
type DatasetWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
}

func NewDatasetWatcher(dir string) (*DatasetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &DatasetWatcher{watcher: w, dir: dir}, nil
}

// Watch blocks until ctx is cancelled, invoking onChange after each
// debounced batch of .csv create/write/remove events. onChange runs on the
// watcher goroutine; it is expected to build a fresh snapshot and swap it
// in whole, never to mutate live data.
func (w *DatasetWatcher) Watch(ctx context.Context, onChange func()) {
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".csv" {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					<-debounce.C
				}
				debounce.Reset(reloadDebounce)
			}
		case <-fire:
			debounce = nil
			fire = nil
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Dataset watcher error: %v", err)
		}
	}
}

func (w *DatasetWatcher) Close() error {
	return w.watcher.Close()
}
