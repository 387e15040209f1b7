package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yashsharma-007/Financeautomation/config"
)

// backendContract exercises the behavior every backend must share.
func backendContract(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	// Missing key reads as absent, not as an error
	blob, err := backend.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get of missing key failed: %v", err)
	}
	if blob != nil {
		t.Errorf("Expected nil blob for missing key, got %q", blob)
	}

	if err := backend.Put(ctx, "k", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, err = backend.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(blob) != `[{"id":"1"}]` {
		t.Errorf("Expected stored blob back, got %q", blob)
	}

	// Overwrite
	if err := backend.Put(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	blob, _ = backend.Get(ctx, "k")
	if string(blob) != `[]` {
		t.Errorf("Expected overwritten blob, got %q", blob)
	}

	if err := backend.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	blob, err = backend.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if blob != nil {
		t.Errorf("Expected nil blob after delete, got %q", blob)
	}

	// Deleting an absent key is a no-op
	if err := backend.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of absent key failed: %v", err)
	}
}

func TestFileBackend(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file backend: %v", err)
	}
	defer backend.Close()

	backendContract(t, backend)
}

func TestFileBackendCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileBackend(dir); err != nil {
		t.Fatalf("Failed to create backend with nested dir: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected data directory to exist: %v", err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create sqlite backend: %v", err)
	}
	defer backend.Close()

	backendContract(t, backend)
}

func TestSQLiteBackendReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	backend, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("Failed to create sqlite backend: %v", err)
	}
	if err := backend.Put(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	backend.Close()

	reopened, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("Failed to reopen sqlite backend: %v", err)
	}
	defer reopened.Close()

	blob, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(blob) != "persisted" {
		t.Errorf("Expected data to survive reopen, got %q", blob)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.StorageConfig{Backend: "cassandra"})
	if err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestOpenFileBackend(t *testing.T) {
	cfg := &config.StorageConfig{
		Backend: "file",
		File:    config.FileConfig{Dir: t.TempDir()},
	}
	backend, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	backend.Close()
}
