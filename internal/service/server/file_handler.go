package server

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"strings"

	"github.com/vertextoedge/steamcmd-web/internal/port"
	"go.uber.org/zap"
)

// FileHandler exposes the downloads directory read-only over HTTP.
type FileHandler struct {
	files  port.FileStore
	logger *zap.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(files port.FileStore, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		logger: logger,
	}
}

// HandleDownloads routes /file/downloads/{appID} to the listing page and
// /file/downloads/{appID}/{path...} to single-file serving.
func (h *FileHandler) HandleDownloads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/file/downloads/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	appID := parts[0]
	if len(parts) == 1 || parts[1] == "" {
		h.serveListing(w, r, appID)
		return
	}

	h.serveFile(w, r, appID, parts[1])
}

// serveListing renders all files under an app's directory as an HTML page
// of links.
func (h *FileHandler) serveListing(w http.ResponseWriter, r *http.Request, appID string) {
	files, err := h.files.ListAppFiles(appID)
	if err != nil {
		if os.IsNotExist(err) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("Directory not found"))
			return
		}
		h.logger.Error("failed to list app files", zap.String("app_id", appID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	b.WriteString("<html><head><title>Files</title></head><body><h1>Downloaded Files</h1><ul>")
	for _, f := range files {
		href := fmt.Sprintf("/file/downloads/%s/%s", appID, f)
		fmt.Fprintf(&b, "<li><a href='%s'>%s</a></li>", html.EscapeString(href), html.EscapeString(f))
	}
	b.WriteString("</ul></body></html>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}

// serveFile streams one downloaded file.
func (h *FileHandler) serveFile(w http.ResponseWriter, r *http.Request, appID, relPath string) {
	path, err := h.files.ResolveFile(appID, relPath)
	if err != nil {
		h.logger.Warn("rejected file path",
			zap.String("app_id", appID),
			zap.String("path", relPath),
			zap.Error(err))
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
		return
	}

	http.ServeFile(w, r, path)
}
