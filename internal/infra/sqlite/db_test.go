package sqlite

import (
	"path/filepath"
	"testing"
)

func TestNewDB_InMemory(t *testing.T) {
	t.Parallel()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB(:memory:) error: %v", err)
	}
	defer db.Close()

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestNewDB_MissingParentDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewDB("/nonexistent-lexgate-dir/gateway.db")
	if err == nil {
		t.Fatal("NewDB should refuse to create parent directories")
	}
}

func TestNewDB_CreatesFileInExistingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gateway.db")
	db, err := NewDB(path)
	if err != nil {
		t.Fatalf("NewDB(%q) error: %v", path, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
}
