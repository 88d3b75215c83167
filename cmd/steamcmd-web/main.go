package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/adapter/filesystem"
	"github.com/vertextoedge/steamcmd-web/internal/adapter/sqlite"
	"github.com/vertextoedge/steamcmd-web/internal/adapter/steamcmd"
	"github.com/vertextoedge/steamcmd-web/internal/config"
	"github.com/vertextoedge/steamcmd-web/internal/logger"
	"github.com/vertextoedge/steamcmd-web/internal/service/downloader"
	"github.com/vertextoedge/steamcmd-web/internal/service/server"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zapLogger := logger.GetZapLogger()
	zapLogger.Info("starting steamcmd-web",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Initialize downloads directory manager
	files, err := filesystem.NewManager(cfg.Downloads.RootDir)
	if err != nil {
		zapLogger.Fatal("failed to create downloads manager", zap.Error(err))
	}

	// Open database
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(cfg.Downloads.RootDir, "steamcmd-web.db")
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err), zap.String("path", dbPath))
	}
	defer store.Close()

	// Create SteamCMD client
	steamCfg := &steamcmd.Config{
		Dir:               cfg.Steam.Dir,
		LinuxArchiveURL:   cfg.Steam.LinuxArchiveURL,
		WindowsArchiveURL: cfg.Steam.WindowsArchiveURL,
		LoginTimeout:      cfg.Steam.GetLoginTimeout(),
	}
	steam := steamcmd.New(steamCfg, zapLogger)

	// Install SteamCMD up front when missing; the UI can retry on failure
	if !steam.Installed() {
		zapLogger.Warn("steamcmd not found", zap.String("exe", steam.ExePath()))
		if err := steam.Install(context.Background()); err != nil {
			zapLogger.Error("initial steamcmd installation failed", zap.Error(err))
		}
	} else {
		zapLogger.Info("steamcmd found", zap.String("exe", steam.ExePath()))
	}

	// Create download service
	downloads := downloader.New(steam, store, files, zapLogger)

	// Create HTTP server
	serverCfg := &server.Config{
		BindAddr:     cfg.HTTP.BindAddr,
		PublicURL:    cfg.HTTP.PublicURL,
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  cfg.HTTP.GetIdleTimeout(),
	}
	httpServer := server.New(serverCfg, downloads, steam, files, store, zapLogger)

	// Start HTTP server
	go func() {
		if err := httpServer.Start(); err != nil {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	zapLogger.Info("application started successfully",
		zap.String("http_addr", cfg.HTTP.BindAddr),
		zap.String("downloads_dir", files.RootDir()),
	)
	<-sigChan

	zapLogger.Info("shutdown signal received, stopping services...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop HTTP server; a running download dies with the process, matching
	// the no-cancellation model
	if err := httpServer.Stop(shutdownCtx); err != nil {
		zapLogger.Error("failed to stop HTTP server gracefully", zap.Error(err))
	}

	zapLogger.Info("application stopped successfully")
}
