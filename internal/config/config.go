package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Steam     SteamConfig     `mapstructure:"steam"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// SteamConfig contains SteamCMD settings
type SteamConfig struct {
	Dir               string `mapstructure:"dir"`
	LinuxArchiveURL   string `mapstructure:"linux_archive_url"`
	WindowsArchiveURL string `mapstructure:"windows_archive_url"`
	LoginTimeout      string `mapstructure:"login_timeout"`
}

// DownloadsConfig contains download directory settings
type DownloadsConfig struct {
	RootDir string `mapstructure:"root_dir"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	BindAddr     string `mapstructure:"bind_addr"`
	PublicURL    string `mapstructure:"public_url"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from the specified file path. A missing config
// file is not an error; defaults and environment variables still apply.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("STEAMCMD_WEB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("steam.dir", "steamcmd")
	viper.SetDefault("steam.linux_archive_url", "")
	viper.SetDefault("steam.windows_archive_url", "")
	viper.SetDefault("steam.login_timeout", "30s")
	viper.SetDefault("downloads.root_dir", "downloads")
	viper.SetDefault("http.bind_addr", "0.0.0.0:8080")
	viper.SetDefault("http.public_url", "")
	viper.SetDefault("http.read_timeout", "30s")
	viper.SetDefault("http.write_timeout", "30s")
	viper.SetDefault("http.idle_timeout", "60s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.file", "logs/app.log")
	viper.SetDefault("database.path", "")

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Steam.Dir == "" {
		return fmt.Errorf("steam.dir is required")
	}
	if c.Downloads.RootDir == "" {
		return fmt.Errorf("downloads.root_dir is required")
	}
	if c.HTTP.BindAddr == "" {
		return fmt.Errorf("http.bind_addr is required")
	}

	if _, err := time.ParseDuration(c.Steam.LoginTimeout); err != nil {
		return fmt.Errorf("invalid steam.login_timeout: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetLoginTimeout returns the login timeout as time.Duration
func (c *SteamConfig) GetLoginTimeout() time.Duration {
	d, _ := time.ParseDuration(c.LoginTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetReadTimeout returns the read timeout as time.Duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as time.Duration
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetIdleTimeout returns the idle timeout as time.Duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	if d == 0 {
		return 60 * time.Second
	}
	return d
}
