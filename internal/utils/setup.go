package utils

import (
	"context"
	"encoding/json"
	"os"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/gui"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

const (
	configFile = "config.json"

	DefaultPort          = 3000
	DefaultListeningAddr = "0.0.0.0"
)

// Setup resolves the runtime configuration. config.json is read when present,
// flags and environment variables override it. When no database is configured
// the interactive wizard is started, except in docker mode.
func Setup(ctx context.Context, flags *models.Flags) *models.Config {
	logger := log.FromContext(ctx)

	cfg := loadConfig(configFile)
	if cfg == nil {
		cfg = &models.Config{}
	}

	ApplyFlags(cfg, flags)

	if cfg.Database.ConnectionString == "" {
		if flags.Mode == "docker" {
			logger.Fatal("You're running in docker mode and did not set DATABASE_URL or volume mount the config.json, interactive set-up is not available for docker.")
		}

		app := gui.New(cfg)
		if err := app.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start interactive wizard")
		}

		// Save the config once done.
		SetConfig(ctx, cfg)
	}

	ApplyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	return cfg
}

// ApplyFlags overlays every flag that was set onto cfg.
func ApplyFlags(cfg *models.Config, flags *models.Flags) {
	if flags.DatabaseURL != "" {
		cfg.Database.ConnectionString = flags.DatabaseURL
		cfg.Database.DBType = ""
	}
	if flags.DatabaseType != "" {
		cfg.Database.DBType = flags.DatabaseType
	}
	if flags.Port != 0 {
		cfg.HTTP.Port = flags.Port
	}
	if flags.ListeningAddr != "" {
		cfg.HTTP.ListeningAddr = flags.ListeningAddr
	}
	if flags.Seed {
		cfg.Misc.SeedStarters = true
	}

	cfg.HTTP.RequestTimeout = flags.RequestTimeout
	cfg.HTTP.RateLimit = flags.RateLimit
	cfg.HTTP.CORSOrigins = flags.CORSOrigins
	cfg.Misc.ImportFile = flags.ImportFile
}

// ApplyDefaults fills in anything still unset after flags were applied.
func ApplyDefaults(cfg *models.Config) {
	if cfg.Database.DBType == "" && cfg.Database.ConnectionString != "" {
		cfg.Database.DBType = database.InferType(cfg.Database.ConnectionString)
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = DefaultPort
	}
	if cfg.HTTP.ListeningAddr == "" {
		cfg.HTTP.ListeningAddr = DefaultListeningAddr
	}
}

func ValidateConfig(cfg *models.Config) error {
	return validator.New().Struct(cfg)
}

func SetConfig(ctx context.Context, cfg *models.Config) {
	logger := log.FromContext(ctx)
	f, err := os.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		logger.WithError(err).Error("Error opening config.json")
		return
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(cfg)
	if err != nil {
		logger.WithError(err).Error("Error encoding config.json")
	}
}

func loadConfig(path string) *models.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var config models.Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil
	}

	return &config
}
