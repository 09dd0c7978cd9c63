package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notion-sheets-sync/internal/api"
	"notion-sheets-sync/internal/config"
	"notion-sheets-sync/internal/logger"
	"notion-sheets-sync/internal/notion"
	"notion-sheets-sync/internal/sheets"
	"notion-sheets-sync/internal/store"
	"notion-sheets-sync/internal/sync"
)

func main() {
	// Load Config
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Init Logger
	if err := logger.InitLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("Starting Notion Sheets Sync Service")

	// Init State Store
	var stateStore store.Store
	if cfg.StateStorage.Enabled {
		stateStore, err = store.NewMySQLStore(cfg.StateStorage)
		if err != nil {
			logger.Log.Fatal("Failed to init state store", zap.Error(err))
		}
	} else {
		stateStore = store.NewNoopStore()
	}
	defer stateStore.Close()

	// Init remote clients
	notionClient := notion.NewClient(cfg.Notion)

	sheetClient, err := sheets.NewClient(context.Background(), cfg.GoogleSheets)
	if err != nil {
		logger.Log.Fatal("Failed to init sheets client", zap.Error(err))
	}

	// Init Sync Manager
	syncManager := sync.NewManager(cfg, notionClient, sheetClient, stateStore)

	// Init Scheduler
	scheduler := sync.NewScheduler(cfg.Scheduler, syncManager)
	scheduler.Start()

	// Init API
	handler := api.NewHandler(syncManager, stateStore, cfg.Server.AuthToken)
	router := handler.Routes()

	// Start Server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.GetReadTimeout(),
		WriteTimeout: cfg.Server.GetWriteTimeout(),
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
	}
}
