package store

import (
	"context"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/models"
)

// TypeLookup resolves type labels against the pre-seeded "types" table. It
// never writes.
type TypeLookup struct {
	drv dialect.Driver
}

func NewTypeLookup(drv dialect.Driver) *TypeLookup {
	return &TypeLookup{drv: drv}
}

// Resolve returns the id for label. An unknown label is reported with
// ok == false rather than an error.
func (l *TypeLookup) Resolve(ctx context.Context, label string) (id int, ok bool, err error) {
	return l.resolve(ctx, l.drv, label)
}

func (l *TypeLookup) resolve(ctx context.Context, q dialect.ExecQuerier, label string) (int, bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false, nil
	}

	b := entsql.Dialect(l.drv.Dialect())
	t := b.Table(database.TypesTableName)
	query, args := b.Select(t.C("id")).
		From(t).
		Where(entsql.EQ(t.C("type_name"), label)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return 0, false, persistenceErr("resolving type", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, persistenceErr("resolving type", rows.Err())
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return 0, false, persistenceErr("resolving type", err)
	}
	return id, true, nil
}

// List returns every known type ordered by id.
func (l *TypeLookup) List(ctx context.Context) ([]models.Type, error) {
	b := entsql.Dialect(l.drv.Dialect())
	t := b.Table(database.TypesTableName)
	query, args := b.Select(t.C("id"), t.C("type_name")).
		From(t).
		OrderBy(t.C("id")).
		Query()

	rows := &entsql.Rows{}
	if err := l.drv.Query(ctx, query, args, rows); err != nil {
		return nil, persistenceErr("listing types", err)
	}
	defer rows.Close()

	types := []models.Type{}
	for rows.Next() {
		var typ models.Type
		if err := rows.Scan(&typ.ID, &typ.Name); err != nil {
			return nil, persistenceErr("listing types", err)
		}
		types = append(types, typ)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("listing types", err)
	}
	return types, nil
}
