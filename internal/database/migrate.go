package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/apex/log"
)

// DefaultTypes is the canonical set of type labels seeded into the "types"
// table. Their ids follow this order on a fresh database.
var DefaultTypes = []string{
	"Normal", "Fire", "Water", "Grass", "Electric", "Ice",
	"Fighting", "Poison", "Ground", "Flying", "Psychic", "Bug",
	"Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

// Migrate creates any missing tables and seeds the type lookup table.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	logger := log.FromContext(ctx)
	logger.Info("initiating database schema migration")

	migrate, err := schema.NewMigrate(
		drv,
		schema.WithForeignKeys(true),
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
	)
	if err != nil {
		return fmt.Errorf("failed to prepare migration: %w", err)
	}

	if err = migrate.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	added, err := SeedTypes(ctx, drv, DefaultTypes)
	if err != nil {
		return err
	}

	logger.WithField("types_added", added).Info("database schema migration complete")
	return nil
}

// SeedTypes inserts every label in names that isn't already present, in the
// order given, and returns how many were added.
func SeedTypes(ctx context.Context, drv dialect.Driver, names []string) (int, error) {
	b := entsql.Dialect(drv.Dialect())

	tx, err := drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	query, args := b.Select("type_name").From(b.Table(TypesTableName)).Query()
	rows := &entsql.Rows{}
	if err = tx.Query(ctx, query, args, rows); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read types: %w", err)
	}

	existing := map[string]bool{}
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			rows.Close()
			tx.Rollback()
			return 0, fmt.Errorf("failed to scan type: %w", err)
		}
		existing[name] = true
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return 0, fmt.Errorf("failed to read types: %w", err)
	}
	rows.Close()

	added := 0
	for _, name := range names {
		if existing[name] {
			continue
		}

		query, args := b.Insert(TypesTableName).Columns("type_name").Values(name).Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to seed type %q: %w", name, err)
		}
		existing[name] = true
		added++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seeded types: %w", err)
	}
	return added, nil
}
