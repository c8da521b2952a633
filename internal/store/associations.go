package store

import (
	"context"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/apex/log"

	"github.com/FlagBrew/pokedex-api/internal/database"
)

// AssociationWriter maintains the pokemon_types join rows of a single pokemon.
type AssociationWriter struct {
	lookup *TypeLookup
}

func NewAssociationWriter(lookup *TypeLookup) *AssociationWriter {
	return &AssociationWriter{lookup: lookup}
}

// Replace drops every association of pokemonID and writes one row per
// resolvable label, in the order given. Unknown and duplicate labels are
// skipped. It returns the number of rows written.
//
// Replace must run inside a transaction: a failure part way through leaves
// the association set incomplete.
func (w *AssociationWriter) Replace(ctx context.Context, tx dialect.ExecQuerier, pokemonID int, labels []string) (int, error) {
	logger := log.FromContext(ctx).WithField("pokemon_id", pokemonID)
	b := entsql.Dialect(w.lookup.drv.Dialect())

	query, args := b.Delete(database.PokemonTypesTableName).
		Where(entsql.EQ("pokemon_id", pokemonID)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, persistenceErr("clearing pokemon types", err)
	}

	seen := map[int]bool{}
	written := 0
	for _, label := range labels {
		typeID, ok, err := w.lookup.resolve(ctx, tx, label)
		if err != nil {
			return written, err
		}

		if !ok {
			logger.WithField("type", strings.TrimSpace(label)).Debug("skipping unknown type")
			continue
		}

		if seen[typeID] {
			continue
		}
		seen[typeID] = true

		query, args := b.Insert(database.PokemonTypesTableName).
			Columns("pokemon_id", "type_id", "slot").
			Values(pokemonID, typeID, written).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return written, persistenceErr("writing pokemon type", err)
		}
		written++
	}

	return written, nil
}
