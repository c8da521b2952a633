package main

import (
	"context"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/store"
	"github.com/FlagBrew/pokedex-api/internal/utils"
	"github.com/apex/log"
	"github.com/joho/godotenv"
)

func setup() (context.Context, *store.Store) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cli.Parse()
	logger = cli.Logger

	ctx := log.NewContext(context.Background(), logger)
	cfg = utils.Setup(ctx, cli.Flags)

	var err error
	db, err = database.New(ctx, &cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}

	if err = database.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}

	pokedex := store.New(db)

	if cfg.Misc.SeedStarters {
		if _, err = utils.SeedStarters(ctx, pokedex); err != nil {
			logger.WithError(err).Fatal("failed to seed starter pokedex")
		}
	}

	if cfg.Misc.ImportFile != "" {
		drafts, err := utils.LoadImportFile(cfg.Misc.ImportFile)
		if err != nil {
			logger.WithError(err).Fatal("failed to load import file")
		}

		concurrency := 4
		if cfg.Database.DBType == "sqlite" {
			concurrency = 1
		}
		if _, err = utils.ImportPokemon(ctx, pokedex, drafts, concurrency); err != nil {
			logger.WithError(err).Fatal("failed to import pokemon")
		}
	}

	return ctx, pokedex
}
