package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vertextoedge/steamcmd-web/internal/adapter/filesystem"
	"go.uber.org/zap"
)

func newFileHandler(t *testing.T) (*FileHandler, string) {
	t.Helper()
	root := t.TempDir()
	m, err := filesystem.NewManager(root)
	if err != nil {
		t.Fatal(err)
	}
	return NewFileHandler(m, zap.NewNop()), root
}

func TestServeListingEmptyDir(t *testing.T) {
	h, root := newFileHandler(t)
	if err := os.MkdirAll(filepath.Join(root, "570"), 0755); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, httptest.NewRequest(http.MethodGet, "/file/downloads/570", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<ul></ul>") {
		t.Errorf("body = %q, want empty <ul>", rec.Body.String())
	}
}

func TestServeListingMissingDir(t *testing.T) {
	h, _ := newFileHandler(t)

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, httptest.NewRequest(http.MethodGet, "/file/downloads/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != "Directory not found" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "Directory not found")
	}
}

func TestServeListingWithFiles(t *testing.T) {
	h, root := newFileHandler(t)
	path := filepath.Join(root, "570", "data", "pak0.vpk")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, httptest.NewRequest(http.MethodGet, "/file/downloads/570", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/file/downloads/570/data/pak0.vpk") {
		t.Errorf("body = %q, want link to data/pak0.vpk", body)
	}
}

func TestServeFile(t *testing.T) {
	h, root := newFileHandler(t)
	path := filepath.Join(root, "570", "readme.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, httptest.NewRequest(http.MethodGet, "/file/downloads/570/readme.txt", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "hello")
	}
}

func TestServeFileNotFound(t *testing.T) {
	h, root := newFileHandler(t)
	if err := os.MkdirAll(filepath.Join(root, "570"), 0755); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, httptest.NewRequest(http.MethodGet, "/file/downloads/570/missing.bin", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"File not found"`) {
		t.Errorf("body = %q, want File not found error", rec.Body.String())
	}
}

func TestServeFileRejectsTraversal(t *testing.T) {
	h, root := newFileHandler(t)
	secret := filepath.Join(filepath.Dir(root), "secret.txt")
	os.WriteFile(secret, []byte("top secret"), 0644)
	t.Cleanup(func() { os.Remove(secret) })

	req := httptest.NewRequest(http.MethodGet, "/file/downloads/570/x", nil)
	req.URL.Path = "/file/downloads/570/../../secret.txt"

	rec := httptest.NewRecorder()
	h.HandleDownloads(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "top secret") {
		t.Error("traversal leaked file content")
	}
}
