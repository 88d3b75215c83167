package port

import (
	"github.com/vertextoedge/steamcmd-web/internal/domain"
)

// JobRepository defines persistence for download jobs.
type JobRepository interface {
	// CreateJob inserts a new job record
	CreateJob(job *domain.Job) error

	// UpdateJobProgress stores the latest progress sample for a job
	UpdateJobProgress(id string, p *domain.Progress) error

	// SetJobStatus records a status change, with an optional error message
	SetJobStatus(id, status, lastError string) error

	// GetJob retrieves a job by id. Returns domain.ErrJobNotFound if absent.
	GetJob(id string) (*domain.Job, error)

	// ListRecentJobs returns the most recently created jobs, newest first
	ListRecentJobs(limit int) ([]*domain.Job, error)
}

// Store combines repository access with lifecycle management.
type Store interface {
	JobRepository

	// Ping checks connectivity
	Ping() error

	// Close releases the underlying database
	Close() error
}
