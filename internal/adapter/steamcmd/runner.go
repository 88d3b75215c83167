package steamcmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
	"github.com/vertextoedge/steamcmd-web/internal/port"
	"go.uber.org/zap"
)

// loginFailureMarker is the token SteamCMD prints on stderr for a rejected
// login.
const loginFailureMarker = "FAILED"

// ValidateLogin runs a one-shot login with a bounded timeout. Any failure,
// including a timeout or a crashed tool, reports invalid credentials; the
// tool gives callers nothing better to distinguish them by.
func (c *Client) ValidateLogin(ctx context.Context, username, password string) error {
	if !c.Installed() {
		return domain.ErrSteamCMDMissing
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.LoginTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.exePath, "+login", username, password, "+quit")

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	err := cmd.Run()
	if strings.Contains(stderr.String(), loginFailureMarker) {
		c.logger.Warn("steam login rejected", zap.String("username", username))
		return domain.ErrInvalidCredentials
	}
	if err != nil {
		c.logger.Error("credential validation error", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	return nil
}

// Run launches SteamCMD to download an app into installDir. Stderr is
// merged into stdout and every line is forwarded on events; lines carrying
// a progress report additionally produce a parsed sample. The channel is
// closed before Run returns.
func (c *Client) Run(ctx context.Context, appID string, creds port.Credentials, installDir string, events chan<- port.Event) error {
	defer close(events)

	if !c.Installed() {
		return domain.ErrSteamCMDMissing
	}

	if err := os.MkdirAll(installDir, 0755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}

	args := []string{"+login"}
	if creds.Anonymous {
		args = append(args, "anonymous")
	} else {
		args = append(args, creds.Username, creds.Password)
	}
	args = append(args,
		"+force_install_dir", installDir,
		"+app_update", appID, "validate",
		"+quit",
	)

	cmd := exec.CommandContext(ctx, c.exePath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	c.logger.Info("starting download",
		zap.String("app_id", appID),
		zap.String("install_dir", installDir),
		zap.Bool("anonymous", creds.Anonymous))

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start steamcmd: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		c.logger.Debug("steamcmd output", zap.String("line", strings.TrimSpace(line)))
		events <- port.Event{Line: line}

		if sample := ParseProgressLine(line, time.Since(start)); sample != nil {
			events <- port.Event{Sample: sample}
		}
	}

	if err := cmd.Wait(); err != nil {
		c.logger.Error("steamcmd exited with error",
			zap.String("app_id", appID),
			zap.Error(err))
		return domain.ErrDownloadFailed
	}

	return nil
}
