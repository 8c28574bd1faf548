package core

import (
	"sync/atomic"

	"github.com/quickmart/support-bot/internal/store"
)

// Snapshot pairs a loaded dataset with the retrieval index built over it.
// Both are immutable once constructed.
type Snapshot struct {
	Dataset *store.Dataset
	Index   *RAGService
}

func NewSnapshot(dataset *store.Dataset) *Snapshot {
	return &Snapshot{
		Dataset: dataset,
		Index:   NewRAGService(dataset),
	}
}

// SnapshotProvider hands out the current snapshot. Reloads swap in a whole
// new snapshot; a request keeps the one it grabbed, so it never observes a
// half-reloaded state.
type SnapshotProvider struct {
	current atomic.Pointer[Snapshot]
}

func NewSnapshotProvider(snapshot *Snapshot) *SnapshotProvider {
	p := &SnapshotProvider{}
	p.current.Store(snapshot)
	return p
}

func (p *SnapshotProvider) Current() *Snapshot {
	return p.current.Load()
}

func (p *SnapshotProvider) Swap(snapshot *Snapshot) {
	p.current.Store(snapshot)
}
