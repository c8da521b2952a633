// Package testdb provides a migrated SQLite database for tests, opened through
// the same code path the server uses.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/models"
)

// New creates a SQLite database in a temporary directory with the schema
// migrated and types seeded. It is closed when the test finishes.
func New(t *testing.T) *entsql.Driver {
	t.Helper()

	drv := NewPlain(t)
	if err := database.Migrate(context.Background(), drv); err != nil {
		t.Fatalf("testdb.New: migrate: %v", err)
	}
	return drv
}

// NewPlain creates an empty SQLite database without running migrations.
func NewPlain(t *testing.T) *entsql.Driver {
	t.Helper()

	drv, err := database.New(context.Background(), &models.DatabaseConfig{
		DBType:           "sqlite",
		ConnectionString: filepath.Join(t.TempDir(), "pokedex.db"),
	})
	if err != nil {
		t.Fatalf("testdb.NewPlain: open database: %v", err)
	}
	t.Cleanup(func() { _ = drv.Close() })
	return drv
}
