package downloader

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vertextoedge/steamcmd-web/internal/domain"
	"github.com/vertextoedge/steamcmd-web/internal/port"
	"go.uber.org/zap"
)

// Service manages download jobs. At most one job runs at a time; a second
// StartJob while one is active returns domain.ErrJobRunning.
type Service struct {
	steam  port.SteamCMD
	jobs   port.JobRepository
	files  port.FileStore
	logger *zap.Logger

	mu     sync.Mutex
	active *domain.Job
	wg     sync.WaitGroup
}

// New creates a new download service
func New(steam port.SteamCMD, jobs port.JobRepository, files port.FileStore, logger *zap.Logger) *Service {
	return &Service{
		steam:  steam,
		jobs:   jobs,
		files:  files,
		logger: logger,
	}
}

// StartJob validates the request, creates a job and launches the download
// worker. Credential validation happens synchronously, before any download
// process is spawned.
func (s *Service) StartJob(ctx context.Context, input string, creds port.Credentials) (*domain.Job, error) {
	appID, err := domain.ParseAppID(input)
	if err != nil {
		return nil, err
	}

	if !s.steam.Installed() {
		return nil, domain.ErrSteamCMDMissing
	}

	if !creds.Anonymous {
		if creds.Username == "" || creds.Password == "" {
			return nil, domain.ErrMissingCredentials
		}
		if err := s.steam.ValidateLogin(ctx, creds.Username, creds.Password); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	if s.active != nil && !s.active.Done() {
		s.mu.Unlock()
		return nil, domain.ErrJobRunning
	}

	job := &domain.Job{
		ID:         uuid.NewString(),
		AppID:      appID,
		Anonymous:  creds.Anonymous,
		InstallDir: s.files.AppDir(appID),
		Status:     domain.JobStatusPending,
		CreatedAt:  time.Now(),
	}
	s.active = job
	s.mu.Unlock()

	if err := s.jobs.CreateJob(job); err != nil {
		s.mu.Lock()
		s.active = nil
		s.mu.Unlock()
		return nil, err
	}

	s.logger.Info("download job created",
		zap.String("job_id", job.ID),
		zap.String("app_id", job.AppID),
		zap.Bool("anonymous", job.Anonymous))

	s.wg.Add(1)
	// The download is not tied to the caller's request lifetime; once
	// started it runs until the child process exits.
	go s.worker(context.WithoutCancel(ctx), job, creds)

	s.mu.Lock()
	snap := s.snapshot(job)
	s.mu.Unlock()
	return snap, nil
}

// worker owns the child-process lifecycle for one job and is the only
// writer of its terminal status.
func (s *Service) worker(ctx context.Context, job *domain.Job, creds port.Credentials) {
	defer s.wg.Done()

	s.setRunning(job)

	events := make(chan port.Event, 64)
	done := make(chan error, 1)
	go func() {
		done <- s.steam.Run(ctx, job.AppID, creds, job.InstallDir, events)
	}()

	for ev := range events {
		if ev.Sample == nil {
			continue
		}
		s.setProgress(job, ev.Sample)
	}

	if err := <-done; err != nil {
		s.setFailed(job, err)
		return
	}
	s.setComplete(job)
}

// Job returns a snapshot of a job by id, preferring the live in-memory
// state for the active job.
func (s *Service) Job(id string) (*domain.Job, error) {
	s.mu.Lock()
	if s.active != nil && s.active.ID == id {
		job := s.snapshot(s.active)
		s.mu.Unlock()
		return job, nil
	}
	s.mu.Unlock()

	return s.jobs.GetJob(id)
}

// Active returns a snapshot of the currently running job, or nil.
func (s *Service) Active() *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.Done() {
		return nil
	}
	return s.snapshot(s.active)
}

// Recent returns the most recently created jobs, newest first.
func (s *Service) Recent(limit int) ([]*domain.Job, error) {
	return s.jobs.ListRecentJobs(limit)
}

// Stop waits for any running download worker to finish.
func (s *Service) Stop() {
	s.wg.Wait()
}

func (s *Service) setRunning(job *domain.Job) {
	s.mu.Lock()
	job.Start()
	s.mu.Unlock()

	if err := s.jobs.SetJobStatus(job.ID, domain.JobStatusRunning, ""); err != nil {
		s.logger.Warn("failed to persist job status", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (s *Service) setProgress(job *domain.Job, p *domain.Progress) {
	s.mu.Lock()
	job.Progress = p
	s.mu.Unlock()

	if err := s.jobs.UpdateJobProgress(job.ID, p); err != nil {
		s.logger.Warn("failed to persist job progress", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (s *Service) setComplete(job *domain.Job) {
	s.mu.Lock()
	job.Complete()
	s.mu.Unlock()

	if err := s.jobs.SetJobStatus(job.ID, domain.JobStatusComplete, ""); err != nil {
		s.logger.Warn("failed to persist job status", zap.String("job_id", job.ID), zap.Error(err))
	}

	s.logger.Info("download complete",
		zap.String("job_id", job.ID),
		zap.String("app_id", job.AppID),
		zap.String("install_dir", job.InstallDir))
}

func (s *Service) setFailed(job *domain.Job, err error) {
	s.mu.Lock()
	job.Fail(err.Error())
	s.mu.Unlock()

	if dbErr := s.jobs.SetJobStatus(job.ID, domain.JobStatusFailed, err.Error()); dbErr != nil {
		s.logger.Warn("failed to persist job status", zap.String("job_id", job.ID), zap.Error(dbErr))
	}

	s.logger.Error("download failed",
		zap.String("job_id", job.ID),
		zap.String("app_id", job.AppID),
		zap.Error(err))
}

// snapshot returns a copy safe to hand outside the lock.
func (s *Service) snapshot(job *domain.Job) *domain.Job {
	cp := *job
	if job.Progress != nil {
		p := *job.Progress
		cp.Progress = &p
	}
	return &cp
}
