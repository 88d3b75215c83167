package steamcmd

import (
	"net/http"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/port"
	"go.uber.org/zap"
)

// Default archive locations on the Steam CDN
const (
	DefaultLinuxArchiveURL   = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_linux.tar.gz"
	DefaultWindowsArchiveURL = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd.zip"
)

// Config contains SteamCMD client configuration
type Config struct {
	Dir               string
	LinuxArchiveURL   string
	WindowsArchiveURL string
	LoginTimeout      time.Duration
}

// DefaultConfig returns default SteamCMD configuration
func DefaultConfig() *Config {
	return &Config{
		Dir:               "steamcmd",
		LinuxArchiveURL:   DefaultLinuxArchiveURL,
		WindowsArchiveURL: DefaultWindowsArchiveURL,
		LoginTimeout:      30 * time.Second,
	}
}

// Client locates, installs and runs the external SteamCMD tool.
type Client struct {
	config  *Config
	exePath string
	http    *http.Client
	logger  *zap.Logger
}

// Ensure Client implements port.SteamCMD
var _ port.SteamCMD = (*Client)(nil)

// New creates a new SteamCMD client
func New(cfg *Config, logger *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.LinuxArchiveURL == "" {
		cfg.LinuxArchiveURL = DefaultLinuxArchiveURL
	}
	if cfg.WindowsArchiveURL == "" {
		cfg.WindowsArchiveURL = DefaultWindowsArchiveURL
	}
	if cfg.LoginTimeout == 0 {
		cfg.LoginTimeout = 30 * time.Second
	}

	return &Client{
		config:  cfg,
		exePath: ExePath(cfg.Dir),
		http:    &http.Client{Timeout: 5 * time.Minute},
		logger:  logger,
	}
}

// ExePath returns the path of the managed steamcmd executable.
func (c *Client) ExePath() string {
	return c.exePath
}
