package utils

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

//go:embed starters.json
var startersJSON []byte

type PokemonCreator interface {
	GetAll(ctx context.Context) ([]models.Pokemon, error)
	Create(ctx context.Context, draft models.PokemonDraft) (*models.Pokemon, error)
}

type ImportResult struct {
	Created int
	Skipped int
}

// StarterPokedex returns the bundled starter entries, in pokedex order.
func StarterPokedex() ([]models.PokemonDraft, error) {
	var drafts []models.PokemonDraft
	if err := json.Unmarshal(startersJSON, &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode starter pokedex: %w", err)
	}
	return drafts, nil
}

func LoadImportFile(path string) ([]models.PokemonDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var drafts []models.PokemonDraft
	if err = json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}
	return drafts, nil
}

// SeedStarters imports the starter pokedex, but only into an empty table.
// Entries are created one at a time so ids follow pokedex order.
func SeedStarters(ctx context.Context, s PokemonCreator) (ImportResult, error) {
	logger := log.FromContext(ctx)

	existing, err := s.GetAll(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	if len(existing) > 0 {
		logger.WithField("count", len(existing)).Info("pokemon table is not empty, skipping starter seed")
		return ImportResult{}, nil
	}

	drafts, err := StarterPokedex()
	if err != nil {
		return ImportResult{}, err
	}
	return ImportPokemon(ctx, s, drafts, 1)
}

// ImportPokemon creates every draft with at most concurrency creations in
// flight. Drafts the store rejects as invalid are skipped and counted; any
// other failure stops the import.
func ImportPokemon(ctx context.Context, s PokemonCreator, drafts []models.PokemonDraft, concurrency int) (ImportResult, error) {
	logger := log.FromContext(ctx)
	if concurrency < 1 {
		concurrency = 1
	}

	var created, skipped atomic.Int64

	logger.WithField("count", len(drafts)).Info("importing pokemon, please wait...")
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, draft := range drafts {
		eg.Go(func() error {
			_, err := s.Create(egCtx, draft)
			if err != nil {
				if store.IsValidation(err) {
					logger.WithError(err).WithField("index", i).WithField("name", draft.Name).Warn("skipping invalid pokemon")
					skipped.Add(1)
					return nil
				}
				return fmt.Errorf("failed to import %q: %w", draft.Name, err)
			}

			created.Add(1)
			return nil
		})
	}

	err := eg.Wait()
	result := ImportResult{Created: int(created.Load()), Skipped: int(skipped.Load())}
	if err != nil {
		return result, err
	}

	logger.WithField("created", result.Created).WithField("skipped", result.Skipped).Info("finished importing pokemon")
	return result, nil
}
