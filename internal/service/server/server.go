package server

import (
	"context"
	"net/http"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/port"
	"github.com/vertextoedge/steamcmd-web/internal/service/downloader"
	"go.uber.org/zap"
)

// Config contains HTTP server configuration
type Config struct {
	BindAddr     string
	PublicURL    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		BindAddr:     "0.0.0.0:8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server represents the HTTP front-end
type Server struct {
	config      *Config
	store       port.Store
	logger      *zap.Logger
	server      *http.Server
	apiHandler  *APIHandler
	fileHandler *FileHandler
}

// New creates a new HTTP server
func New(cfg *Config, downloads *downloader.Service, steam port.SteamCMD, files port.FileStore, store port.Store, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}

	s.apiHandler = NewAPIHandler(downloads, steam, cfg.PublicURL, logger)
	s.fileHandler = NewFileHandler(files, logger)

	mux := http.NewServeMux()

	// UI
	mux.HandleFunc("/", s.handleIndex)

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// API endpoints
	mux.HandleFunc("/api/status", s.apiHandler.HandleStatus)
	mux.HandleFunc("/api/install", s.apiHandler.HandleInstall)
	mux.HandleFunc("/api/download", s.apiHandler.HandleDownload)
	mux.HandleFunc("/api/jobs", s.apiHandler.HandleJobs)
	mux.HandleFunc("/api/jobs/", s.apiHandler.HandleJob)

	// Downloaded file exposer
	mux.HandleFunc("/file/downloads/", s.fileHandler.HandleDownloads)

	s.server = &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      LoggingMiddleware(logger)(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// handleIndex serves the single-page UI
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.store.Ping(); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		http.Error(w, "Database connection failed", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","time":"` + time.Now().Format(time.RFC3339) + `"}`))
}
