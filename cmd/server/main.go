package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickmart/support-bot/internal/api"
	"github.com/quickmart/support-bot/internal/config"
	"github.com/quickmart/support-bot/internal/core"
	"github.com/quickmart/support-bot/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Command line flag for a data sanity check
	validateDataFlag := flag.Bool("validate-data", false, "Load the dataset, print row counts, and exit")
	flag.Parse()

	dataset, err := loadDataset()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Dataset loaded: %d customers, %d stores, %d inventory items, %d offers",
		len(dataset.Customers), len(dataset.Stores), len(dataset.Inventory), len(dataset.Offers))

	if *validateDataFlag {
		os.Exit(0)
	}

	// The snapshot holds the tables plus the retrieval index built over them.
	snapshots := core.NewSnapshotProvider(core.NewSnapshot(dataset))

	chatService := core.NewChatService(snapshots, config.AppConfig.RAGTopK, config.AppConfig.RedactDebugContext)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(chatService)
	router := api.NewRouter(apiHandler)

	// Optionally watch the CSV directory and swap in fresh snapshots.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	if config.AppConfig.WatchData {
		if config.AppConfig.DataSource != "csv" {
			log.Println("WATCH_DATA is only supported for the csv data source, ignoring")
		} else {
			watcher, err := store.NewDatasetWatcher(config.AppConfig.DataDir)
			if err != nil {
				log.Fatalf("Failed to start dataset watcher: %v", err)
			}
			defer watcher.Close()
			go watcher.Watch(watchCtx, func() {
				reloaded, err := store.LoadCSVDataset(config.AppConfig.DataDir)
				if err != nil {
					log.Printf("Dataset reload failed, keeping previous snapshot: %v", err)
					return
				}
				snapshots.Swap(core.NewSnapshot(reloaded))
				log.Printf("Dataset reloaded: %d customers, %d stores, %d inventory items, %d offers",
					len(reloaded.Customers), len(reloaded.Stores), len(reloaded.Inventory), len(reloaded.Offers))
			})
			log.Printf("Watching %s for dataset changes", config.AppConfig.DataDir)
		}
	}

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	cancelWatch()

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}

func loadDataset() (*store.Dataset, error) {
	switch config.AppConfig.DataSource {
	case "sqlite":
		return store.LoadSQLiteDataset(config.AppConfig.DatabasePath)
	default:
		return store.LoadCSVDataset(config.AppConfig.DataDir)
	}
}
