package main

import (
	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"github.com/lrstanley/chix"
	"github.com/lrstanley/clix"
)

var (
	cli    = &clix.CLI[models.Flags]{}
	logger log.Interface
	db     *entsql.Driver
	cfg    *models.Config
)

func main() {
	ctx, pokedex := setup()
	defer db.Close()

	logger.Infof("Starting HTTP server on %s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port)
	if err := chix.RunContext(ctx, httpServer(ctx, pokedex)); err != nil {
		logger.WithError(err).Error("http server stopped")
	}
}
