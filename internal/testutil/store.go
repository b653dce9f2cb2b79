package testutil

import (
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"

	"lothub/pkg/database"
)

// NewStore opens a throwaway sqlite database with the full schema applied.
// The file lives under the test's temp dir and is cleaned up with it.
func NewStore(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.MigrateFile(db, schemaPath(t)); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func schemaPath(t *testing.T) string {
	t.Helper()
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate schema file")
	}
	return filepath.Join(filepath.Dir(self), "..", "..", "docs", "schema.sql")
}
