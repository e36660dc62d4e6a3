package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/sotien/internal/storage"
	"github.com/mmynk/sotien/internal/storage/storagetest"
)

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		store, err := New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	})
}

func TestNewCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "sotien.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}

	// Migrations are idempotent.
	again, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	again.Close()
}
