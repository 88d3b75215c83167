package steamcmd

import (
	"os"
	"path/filepath"
	"runtime"
)

// exeName returns the platform-specific steamcmd executable name.
func exeName() string {
	if runtime.GOOS == "windows" {
		return "steamcmd.exe"
	}
	return "steamcmd.sh"
}

// ExePath returns the expected path of the steamcmd executable under dir.
func ExePath(dir string) string {
	return filepath.Join(dir, exeName())
}

// Installed reports whether the steamcmd executable exists at the
// configured location.
func (c *Client) Installed() bool {
	_, err := os.Stat(c.exePath)
	return err == nil
}
