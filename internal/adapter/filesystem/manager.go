package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vertextoedge/steamcmd-web/internal/port"
)

// Manager handles read access to the downloads directory tree.
type Manager struct {
	rootDir string
}

// Ensure Manager implements port.FileStore
var _ port.FileStore = (*Manager)(nil)

// NewManager creates a new downloads directory manager
func NewManager(rootDir string) (*Manager, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create downloads root dir: %w", err)
	}

	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve downloads root dir: %w", err)
	}

	return &Manager{rootDir: abs}, nil
}

// RootDir returns the downloads root directory
func (m *Manager) RootDir() string {
	return m.rootDir
}

// AppDir returns the install directory for an app id
func (m *Manager) AppDir(appID string) string {
	return filepath.Join(m.rootDir, appID)
}

// ListAppFiles walks an app's directory and returns relative file paths,
// sorted. Directories themselves are not listed.
func (m *Manager) ListAppFiles(appID string) ([]string, error) {
	appDir, err := m.safeJoin(appID)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(appDir); err != nil {
		return nil, err
	}

	files := []string{}
	err = filepath.WalkDir(appDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(appDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk app dir: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// ResolveFile maps an app id and relative path to an absolute path inside
// the downloads tree. Paths that resolve outside the tree are rejected.
func (m *Manager) ResolveFile(appID, relPath string) (string, error) {
	return m.safeJoin(appID, relPath)
}

// safeJoin joins path segments under the root and rejects traversal
// outside of it.
func (m *Manager) safeJoin(parts ...string) (string, error) {
	path := filepath.Join(append([]string{m.rootDir}, parts...)...)
	cleaned := filepath.Clean(path)
	if cleaned != m.rootDir && !strings.HasPrefix(cleaned, m.rootDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes downloads dir: %s", filepath.Join(parts...))
	}
	return cleaned, nil
}
