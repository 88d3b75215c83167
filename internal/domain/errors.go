package domain

import "errors"

// Common domain errors
var (
	ErrInvalidAppID       = errors.New("invalid app id or store URL")
	ErrMissingCredentials = errors.New("username and password required for non-anonymous login")
	ErrInvalidCredentials = errors.New("invalid steam credentials")
	ErrSteamCMDMissing    = errors.New("steamcmd is not installed")
	ErrInstallFailed      = errors.New("steamcmd installation failed")
	ErrDownloadFailed     = errors.New("download failed")

	// Job errors
	ErrJobNotFound = errors.New("job not found")
	ErrJobRunning  = errors.New("a download is already running")
)
