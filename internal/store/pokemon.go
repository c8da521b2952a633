// Package store persists pokemon and their type associations. Every write
// runs in a single transaction so callers never observe a partially created
// or partially updated pokemon.
package store

import (
	"context"
	"database/sql"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/models"
)

type Store struct {
	drv   dialect.Driver
	types *TypeLookup
	assoc *AssociationWriter
}

func New(drv dialect.Driver) *Store {
	types := NewTypeLookup(drv)
	return &Store{
		drv:   drv,
		types: types,
		assoc: NewAssociationWriter(types),
	}
}

// Types exposes the lookup the store resolves labels with.
func (s *Store) Types() *TypeLookup {
	return s.types
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// GetAll returns every pokemon ordered by id. Pokemon without any type are
// included with an empty Types slice.
func (s *Store) GetAll(ctx context.Context) ([]models.Pokemon, error) {
	query, args := s.selectPokemon(0).Query()
	return s.query(ctx, s.drv, query, args)
}

// GetByID returns a single pokemon, or a *NotFoundError.
func (s *Store) GetByID(ctx context.Context, id int) (*models.Pokemon, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.get(ctx, s.drv, id)
}

// Create inserts the pokemon and its type associations, returning the stored
// record. Nothing is persisted if any step fails.
func (s *Store) Create(ctx context.Context, draft models.PokemonDraft) (*models.Pokemon, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var mon *models.Pokemon
	err := withTx(ctx, s.drv, func(tx dialect.Tx) error {
		id, err := s.insert(ctx, tx, draft)
		if err != nil {
			return err
		}

		if err = s.replaceTypes(ctx, tx, id, draft.Types); err != nil {
			return err
		}

		mon, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mon, nil
}

// Update applies patch to the pokemon with the given id. Fields that are nil
// (or empty strings) keep their current value.
func (s *Store) Update(ctx context.Context, id int, patch models.PokemonPatch) (*models.Pokemon, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if patch.Types != nil && len(patch.Types) == 0 {
		return nil, &ValidationError{Field: "types", Reason: "at least one type is required"}
	}
	if patch.PokedexNumber != nil && *patch.PokedexNumber <= 0 {
		return nil, &ValidationError{Field: "pokedex_number", Reason: "must be a positive integer"}
	}

	var mon *models.Pokemon
	err := withTx(ctx, s.drv, func(tx dialect.Tx) error {
		if _, err := s.get(ctx, tx, id); err != nil {
			return err
		}

		b := s.builder()
		update := b.Update(database.PokemonTableName).Where(entsql.EQ("id", id))
		changed := false
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			update.Set("name", *patch.Name)
			changed = true
		}
		if patch.Sprite != nil && strings.TrimSpace(*patch.Sprite) != "" {
			update.Set("sprite", *patch.Sprite)
			changed = true
		}
		if patch.PokedexNumber != nil {
			update.Set("pokedex_number", *patch.PokedexNumber)
			changed = true
		}

		if changed {
			query, args := update.Query()
			if err := tx.Exec(ctx, query, args, nil); err != nil {
				return persistenceErr("updating pokemon", err)
			}
		}

		if patch.Types != nil {
			if err := s.replaceTypes(ctx, tx, id, patch.Types); err != nil {
				return err
			}
		}

		var err error
		mon, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mon, nil
}

// Delete removes the pokemon and its associations. It reports false when no
// pokemon with that id existed.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	var deleted bool
	err := withTx(ctx, s.drv, func(tx dialect.Tx) error {
		b := s.builder()

		query, args := b.Delete(database.PokemonTypesTableName).Where(entsql.EQ("pokemon_id", id)).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return persistenceErr("deleting pokemon types", err)
		}

		var res sql.Result
		query, args = b.Delete(database.PokemonTableName).Where(entsql.EQ("id", id)).Query()
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			return persistenceErr("deleting pokemon", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return persistenceErr("deleting pokemon", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *Store) replaceTypes(ctx context.Context, tx dialect.Tx, id int, labels []string) error {
	written, err := s.assoc.Replace(ctx, tx, id, labels)
	if err != nil {
		return err
	}
	if written == 0 {
		return &ValidationError{Field: "types", Reason: "none of the supplied types exist"}
	}
	return nil
}

// insert writes the scalar row and returns its assigned id. Postgres reports
// the id through RETURNING, the other dialects through LastInsertId.
func (s *Store) insert(ctx context.Context, tx dialect.Tx, draft models.PokemonDraft) (int, error) {
	query, args := s.insertPokemon(draft).Query()

	if s.drv.Dialect() == dialect.Postgres {
		rows := &entsql.Rows{}
		if err := tx.Query(ctx, query, args, rows); err != nil {
			return 0, persistenceErr("inserting pokemon", err)
		}
		defer rows.Close()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return 0, persistenceErr("inserting pokemon", err)
			}
			return 0, persistenceErr("inserting pokemon", sql.ErrNoRows)
		}

		var id int
		if err := rows.Scan(&id); err != nil {
			return 0, persistenceErr("inserting pokemon", err)
		}
		return id, nil
	}

	var res sql.Result
	if err := tx.Exec(ctx, query, args, &res); err != nil {
		return 0, persistenceErr("inserting pokemon", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistenceErr("inserting pokemon", err)
	}
	return int(id), nil
}

func (s *Store) insertPokemon(draft models.PokemonDraft) *entsql.InsertBuilder {
	insert := s.builder().Insert(database.PokemonTableName).
		Columns("pokedex_number", "name", "sprite").
		Values(draft.PokedexNumber, draft.Name, draft.Sprite)
	if s.drv.Dialect() == dialect.Postgres {
		insert.Returning("id")
	}
	return insert
}

func (s *Store) get(ctx context.Context, q dialect.ExecQuerier, id int) (*models.Pokemon, error) {
	query, args := s.selectPokemon(id).Query()
	mons, err := s.query(ctx, q, query, args)
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return &mons[0], nil
}

// selectPokemon builds the hydration query: one row per association, with a
// LEFT JOIN so pokemon with no associations still produce a row. An id of 0
// selects every pokemon. Joined tables are aliased up front so the selected
// columns and the join clauses agree on their names.
func (s *Store) selectPokemon(id int) *entsql.Selector {
	b := s.builder()
	p := b.Table(database.PokemonTableName)
	pt := b.Table(database.PokemonTypesTableName).As("pt")
	t := b.Table(database.TypesTableName).As("t")

	sel := b.Select().
		From(p).
		LeftJoin(pt).On(p.C("id"), pt.C("pokemon_id")).
		LeftJoin(t).On(pt.C("type_id"), t.C("id"))
	sel.Select(p.C("id"), p.C("pokedex_number"), p.C("name"), p.C("sprite"), t.C("type_name"))

	if id > 0 {
		sel.Where(entsql.EQ(p.C("id"), id))
	}

	return sel.OrderBy(p.C("id"), pt.C("slot"))
}

func (s *Store) query(ctx context.Context, q dialect.ExecQuerier, query string, args []any) ([]models.Pokemon, error) {
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, persistenceErr("querying pokemon", err)
	}
	defer rows.Close()

	mons := []models.Pokemon{}
	for rows.Next() {
		var (
			id       int
			number   sql.NullInt64
			name     string
			sprite   string
			typeName sql.NullString
		)
		if err := rows.Scan(&id, &number, &name, &sprite, &typeName); err != nil {
			return nil, persistenceErr("scanning pokemon", err)
		}

		if n := len(mons); n == 0 || mons[n-1].ID != id {
			mon := models.Pokemon{
				ID:     id,
				Name:   name,
				Sprite: sprite,
				Types:  []string{},
			}
			if number.Valid {
				v := int(number.Int64)
				mon.PokedexNumber = &v
			}
			mons = append(mons, mon)
		}

		if typeName.Valid {
			last := &mons[len(mons)-1]
			last.Types = append(last.Types, typeName.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("querying pokemon", err)
	}
	return mons, nil
}

func validateID(id int) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return nil
}

func validateDraft(draft models.PokemonDraft) error {
	switch {
	case strings.TrimSpace(draft.Name) == "":
		return &ValidationError{Field: "name", Reason: "is required"}
	case strings.TrimSpace(draft.Sprite) == "":
		return &ValidationError{Field: "sprite", Reason: "is required"}
	case len(draft.Types) == 0:
		return &ValidationError{Field: "types", Reason: "at least one type is required"}
	case draft.PokedexNumber != nil && *draft.PokedexNumber <= 0:
		return &ValidationError{Field: "pokedex_number", Reason: "must be a positive integer"}
	}
	return nil
}
