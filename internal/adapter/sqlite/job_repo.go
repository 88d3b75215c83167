package sqlite

import (
	"database/sql"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
)

// CreateJob inserts a new job record
func (s *Store) CreateJob(job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, app_id, anonymous, install_dir, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		job.ID, job.AppID, job.Anonymous, job.InstallDir, job.Status, job.CreatedAt)
	return err
}

// UpdateJobProgress stores the latest progress sample for a job
func (s *Store) UpdateJobProgress(id string, p *domain.Progress) error {
	query := `
		UPDATE jobs
		SET percentage = ?,
			downloaded_bytes = ?,
			total_bytes = ?,
			elapsed_ms = ?,
			remaining_ms = ?
		WHERE id = ?
	`

	_, err := s.db.Exec(query,
		p.Percentage, p.Downloaded, p.Total,
		p.Elapsed.Milliseconds(), p.Remaining.Milliseconds(), id)
	return err
}

// SetJobStatus records a status change, stamping started_at/finished_at
// as the job enters and leaves the running state.
func (s *Store) SetJobStatus(id, status, lastError string) error {
	var query string
	switch status {
	case domain.JobStatusRunning:
		query = `
			UPDATE jobs
			SET status = ?, last_error = ?, started_at = datetime('now')
			WHERE id = ?
		`
	case domain.JobStatusComplete, domain.JobStatusFailed:
		query = `
			UPDATE jobs
			SET status = ?, last_error = ?, finished_at = datetime('now')
			WHERE id = ?
		`
	default:
		query = `UPDATE jobs SET status = ?, last_error = ? WHERE id = ?`
	}

	_, err := s.db.Exec(query, status, lastError, id)
	return err
}

// GetJob retrieves a job by id
func (s *Store) GetJob(id string) (*domain.Job, error) {
	query := `
		SELECT id, app_id, anonymous, install_dir, status, last_error,
			   percentage, downloaded_bytes, total_bytes, elapsed_ms, remaining_ms,
			   created_at, started_at, finished_at
		FROM jobs
		WHERE id = ?
	`

	job, err := scanJob(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrJobNotFound
	}
	return job, err
}

// ListRecentJobs returns the most recently created jobs, newest first
func (s *Store) ListRecentJobs(limit int) ([]*domain.Job, error) {
	query := `
		SELECT id, app_id, anonymous, install_dir, status, last_error,
			   percentage, downloaded_bytes, total_bytes, elapsed_ms, remaining_ms,
			   created_at, started_at, finished_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanJob scans a job row
func scanJob(row scanner) (*domain.Job, error) {
	job := &domain.Job{}
	p := &domain.Progress{}
	var lastError sql.NullString
	var elapsedMs, remainingMs int64
	var startedAt, finishedAt sql.NullTime

	err := row.Scan(
		&job.ID, &job.AppID, &job.Anonymous, &job.InstallDir, &job.Status,
		&lastError, &p.Percentage, &p.Downloaded, &p.Total,
		&elapsedMs, &remainingMs,
		&job.CreatedAt, &startedAt, &finishedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastError.Valid {
		job.LastError = lastError.String
	}
	if startedAt.Valid {
		t := startedAt.Time
		job.StartedAt = &t
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		job.FinishedAt = &t
	}

	p.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	p.Remaining = time.Duration(remainingMs) * time.Millisecond
	if p.Total > 0 || p.Downloaded > 0 {
		job.Progress = p
	}

	return job, nil
}
