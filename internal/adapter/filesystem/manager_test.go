package filesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListAppFiles(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	appDir := filepath.Join(root, "570")
	mustWrite(t, filepath.Join(appDir, "game.exe"))
	mustWrite(t, filepath.Join(appDir, "data", "pak0.vpk"))
	mustWrite(t, filepath.Join(appDir, "data", "maps", "dota.vmap"))

	got, err := m.ListAppFiles("570")
	if err != nil {
		t.Fatalf("ListAppFiles() error: %v", err)
	}

	want := []string{"data/maps/dota.vmap", "data/pak0.vpk", "game.exe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAppFiles() = %v, want %v", got, want)
	}
}

func TestListAppFilesEmptyDir(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Join(root, "440"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := m.ListAppFiles("440")
	if err != nil {
		t.Fatalf("ListAppFiles() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListAppFiles() = %v, want empty", got)
	}
}

func TestListAppFilesMissingDir(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.ListAppFiles("999")
	if !os.IsNotExist(err) {
		t.Errorf("ListAppFiles() error = %v, want os.IsNotExist", err)
	}
}

func TestResolveFileTraversal(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		appID   string
		relPath string
		wantErr bool
	}{
		{name: "plain file", appID: "570", relPath: "game.exe"},
		{name: "nested file", appID: "570", relPath: "data/pak0.vpk"},
		{name: "parent escape", appID: "570", relPath: "../../etc/passwd", wantErr: true},
		{name: "escape via app id", appID: "..", relPath: "secret", wantErr: true},
		{name: "dot segments collapsing inside", appID: "570", relPath: "data/../game.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ResolveFile(tt.appID, tt.relPath)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ResolveFile(%q, %q) = %q, want error", tt.appID, tt.relPath, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFile(%q, %q) error: %v", tt.appID, tt.relPath, err)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("ResolveFile() = %q, want absolute path", got)
			}
		})
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}
