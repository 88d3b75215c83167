package domain

import "time"

// Job status constants
const (
	JobStatusPending  = "pending"
	JobStatusRunning  = "running"
	JobStatusComplete = "complete"
	JobStatusFailed   = "failed"
)

// Job represents a single download job handed to SteamCMD.
type Job struct {
	ID         string
	AppID      string
	Anonymous  bool
	InstallDir string

	// State
	Status    string
	LastError string
	Progress  *Progress

	// Timestamps
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Start marks the job as running.
func (j *Job) Start() {
	j.Status = JobStatusRunning
	now := time.Now()
	j.StartedAt = &now
}

// Complete marks the job as finished successfully.
func (j *Job) Complete() {
	j.Status = JobStatusComplete
	now := time.Now()
	j.FinishedAt = &now
}

// Fail marks the job as failed with an error message.
func (j *Job) Fail(msg string) {
	j.Status = JobStatusFailed
	j.LastError = msg
	now := time.Now()
	j.FinishedAt = &now
}

// Done returns true once the job reached a terminal status.
func (j *Job) Done() bool {
	return j.Status == JobStatusComplete || j.Status == JobStatusFailed
}

// Progress is a snapshot of download completion derived from one SteamCMD
// progress line. Only the most recent sample is retained per job.
type Progress struct {
	Percentage float64
	Downloaded int64
	Total      int64
	Elapsed    time.Duration
	Remaining  time.Duration
}

// NewProgress computes a progress sample from downloaded/total byte counts
// and the wall-clock time since the process started. Speed and remaining
// time degrade to zero instead of dividing by zero.
func NewProgress(downloaded, total int64, elapsed time.Duration) *Progress {
	p := &Progress{
		Downloaded: downloaded,
		Total:      total,
		Elapsed:    elapsed,
	}

	if total > 0 {
		p.Percentage = float64(downloaded) / float64(total) * 100
	}

	var speed float64
	if elapsed > 0 {
		speed = float64(downloaded) / elapsed.Seconds()
	}
	if speed > 0 {
		p.Remaining = time.Duration(float64(total-downloaded) / speed * float64(time.Second))
	}

	return p
}
