package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vertextoedge/steamcmd-web/internal/domain"
	"github.com/vertextoedge/steamcmd-web/internal/port"
	"github.com/vertextoedge/steamcmd-web/internal/service/downloader"
	"go.uber.org/zap"
)

// APIHandler handles the JSON API the browser UI polls
type APIHandler struct {
	downloads *downloader.Service
	steam     port.SteamCMD
	publicURL string
	logger    *zap.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(downloads *downloader.Service, steam port.SteamCMD, publicURL string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		downloads: downloads,
		steam:     steam,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

// downloadRequest is the POST /api/download body
type downloadRequest struct {
	App       string `json:"app"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Anonymous bool   `json:"anonymous"`
}

// progressResponse mirrors domain.Progress for the UI
type progressResponse struct {
	Percentage       float64 `json:"percentage"`
	Downloaded       int64   `json:"downloaded"`
	Total            int64   `json:"total"`
	ElapsedSeconds   int64   `json:"elapsed_seconds"`
	RemainingSeconds int64   `json:"remaining_seconds"`
}

// jobResponse is the GET /api/jobs/{id} body
type jobResponse struct {
	ID         string            `json:"id"`
	AppID      string            `json:"app_id"`
	Status     string            `json:"status"`
	StatusLine string            `json:"status_line"`
	Error      string            `json:"error,omitempty"`
	Progress   *progressResponse `json:"progress,omitempty"`
	Location   string            `json:"location,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// HandleStatus reports SteamCMD presence and the public link base
func (h *APIHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"installed":  h.steam.Installed(),
		"public_url": h.publicURL,
	})
}

// HandleInstall installs SteamCMD on demand
func (h *APIHandler) HandleInstall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.steam.Installed() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "installed"})
		return
	}

	if err := h.steam.Install(r.Context()); err != nil {
		h.logger.Error("installation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Installation Failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "installed"})
}

// HandleDownload starts a download job
func (h *APIHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	creds := port.Credentials{
		Username:  req.Username,
		Password:  req.Password,
		Anonymous: req.Anonymous,
	}

	job, err := h.downloads.StartJob(r.Context(), req.App, creds)
	if err != nil {
		writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, h.jobResponse(job))
}

// HandleJobs lists recent jobs
func (h *APIHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs, err := h.downloads.Recent(20)
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]*jobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, h.jobResponse(job))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleJob returns one job snapshot: /api/jobs/{id}
func (h *APIHandler) HandleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	job, err := h.downloads.Job(id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to get job", zap.String("job_id", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.jobResponse(job))
}

// jobResponse converts a job snapshot into its API shape
func (h *APIHandler) jobResponse(job *domain.Job) *jobResponse {
	resp := &jobResponse{
		ID:         job.ID,
		AppID:      job.AppID,
		Status:     job.Status,
		StatusLine: h.statusLine(job),
		Error:      job.LastError,
		CreatedAt:  job.CreatedAt,
	}

	if job.Progress != nil {
		resp.Progress = &progressResponse{
			Percentage:       job.Progress.Percentage,
			Downloaded:       job.Progress.Downloaded,
			Total:            job.Progress.Total,
			ElapsedSeconds:   int64(job.Progress.Elapsed.Seconds()),
			RemainingSeconds: int64(job.Progress.Remaining.Seconds()),
		}
	}

	if job.Status == domain.JobStatusComplete {
		resp.Location = h.downloadLocation(job)
	}

	return resp
}

// statusLine renders the human-readable progress text shown in the UI
func (h *APIHandler) statusLine(job *domain.Job) string {
	switch job.Status {
	case domain.JobStatusPending:
		return "Initializing..."
	case domain.JobStatusComplete:
		return "Download Complete!"
	case domain.JobStatusFailed:
		return "Error occurred."
	}

	p := job.Progress
	if p == nil {
		return "Starting download..."
	}
	return fmt.Sprintf("Downloading: %s / %s | Elapsed: %s | Remaining: %s",
		humanize.Bytes(uint64(p.Downloaded)),
		humanize.Bytes(uint64(p.Total)),
		formatClock(p.Elapsed),
		formatClock(p.Remaining))
}

// downloadLocation builds the link (or local path) shown when a job
// completes. With a public URL configured it points at the file exposer.
func (h *APIHandler) downloadLocation(job *domain.Job) string {
	if h.publicURL != "" {
		return fmt.Sprintf("%s/file/downloads/%s/", h.publicURL, job.AppID)
	}
	return job.InstallDir
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAppID),
		errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrJobRunning):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSteamCMDMissing):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// formatClock formats a duration as HH:MM:SS
func formatClock(d time.Duration) string {
	total := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
