package steamcmd

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vertextoedge/steamcmd-web/internal/domain"
	"go.uber.org/zap"
)

// Install fetches the platform-specific SteamCMD archive and extracts it
// into the configured directory.
func (c *Client) Install(ctx context.Context) error {
	if err := os.MkdirAll(c.config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create steamcmd dir: %w", err)
	}

	c.logger.Info("installing steamcmd", zap.String("dir", c.config.Dir))

	var err error
	if runtime.GOOS == "windows" {
		err = c.installZip(ctx, c.config.WindowsArchiveURL)
	} else {
		err = c.installTarGz(ctx, c.config.LinuxArchiveURL)
	}
	if err != nil {
		c.logger.Error("steamcmd installation failed", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrInstallFailed, err)
	}

	c.logger.Info("steamcmd installed successfully", zap.String("exe", c.exePath))
	return nil
}

// installTarGz downloads and unpacks a gzipped tarball, then marks the
// launcher script executable.
func (c *Client) installTarGz(ctx context.Context, url string) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	gz, err := gzip.NewReader(body)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive entry: %w", err)
		}

		target, err := c.archivePath(hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFileFrom(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}

	return os.Chmod(c.exePath, 0755)
}

// installZip downloads a zip archive to a temp file and unpacks it.
// archive/zip needs random access, so the body is spooled to disk first.
func (c *Client) installZip(ctx context.Context, url string) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(c.config.Dir, "steamcmd-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, body)
	if err != nil {
		return fmt.Errorf("failed to download archive: %w", err)
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	for _, f := range zr.File {
		target, err := c.archivePath(f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open archive entry: %w", err)
		}
		err = writeFileFrom(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// fetch performs an HTTP GET and returns the response body.
func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	return resp.Body, nil
}

// archivePath maps an archive entry name into the steamcmd dir, rejecting
// entries that escape it.
func (c *Client) archivePath(name string) (string, error) {
	target := filepath.Join(c.config.Dir, filepath.FromSlash(name))
	if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(c.config.Dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes target dir: %s", name)
	}
	return target, nil
}

// writeFileFrom writes reader content to target, creating parent dirs.
func writeFileFrom(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return f.Close()
}
