// Package testing provides testing utilities and helpers for the holdings service.
package testing

import (
	"path/filepath"
	"testing"

	"github.com/aristath/holdings-dashboard/internal/database"
)

// NewTestDB creates a migrated SQLite database in t.TempDir() and closes it
// when the test finishes.
//
// Supported schema names:
//   - "dashboard" - applies dashboard_schema.sql
//   - "cache" - applies cache_schema.sql (cache profile)
func NewTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	profile := database.ProfileStandard
	if name == "cache" {
		profile = database.ProfileCache
	}

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), name+".db"),
		Profile: profile,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}
	return db
}
