package port

import (
	"context"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
)

// Credentials carries a Steam login. Anonymous logins leave Username and
// Password empty.
type Credentials struct {
	Username  string
	Password  string
	Anonymous bool
}

// Event is one item emitted by a running download: either a raw SteamCMD
// output line or a parsed progress sample.
type Event struct {
	Line   string
	Sample *domain.Progress
}

// SteamCMD defines the interface to the external SteamCMD tool.
type SteamCMD interface {
	// Installed reports whether the steamcmd executable exists on disk
	Installed() bool

	// Install fetches and extracts the platform-specific steamcmd archive
	Install(ctx context.Context) error

	// ValidateLogin runs a one-shot login to verify credentials.
	// Returns domain.ErrInvalidCredentials when the login is rejected.
	ValidateLogin(ctx context.Context, username, password string) error

	// Run downloads an app into installDir, emitting raw lines and parsed
	// progress samples on events until the child process exits. The channel
	// is closed before Run returns. A nil return means the download
	// completed; any other outcome is reported as an error.
	Run(ctx context.Context, appID string, creds Credentials, installDir string, events chan<- Event) error
}
