package models

import "time"

type Flags struct {
	Mode           string        `short:"m" long:"mode" env:"MODE" required:"true" description:"The mode the Pokedex API is running in: cli/docker" default:"cli"`
	DatabaseURL    string        `long:"database-url" env:"DATABASE_URL" description:"Connection string for the relational store"`
	DatabaseType   string        `long:"database-type" env:"DATABASE_TYPE" description:"Database driver: postgres/mysql/sqlite (inferred from the URL when empty)"`
	Port           int           `long:"port" env:"PORT" description:"HTTP listening port (default: 3000)"`
	ListeningAddr  string        `long:"listen" env:"LISTEN_ADDR" description:"HTTP listening address (default: 0.0.0.0)"`
	RequestTimeout time.Duration `long:"request-timeout" env:"REQUEST_TIMEOUT" description:"Upper bound for a single request" default:"10s"`
	RateLimit      int           `long:"rate-limit" env:"RATE_LIMIT" description:"Requests per minute allowed per IP (0 disables)" default:"120"`
	CORSOrigins    []string      `long:"cors-origin" env:"CORS_ORIGINS" env-delim:"," description:"Allowed CORS origins" default:"*"`
	Seed           bool          `long:"seed" env:"SEED" description:"Import the starter Pokedex when the pokemon table is empty"`
	ImportFile     string        `long:"import" env:"IMPORT_FILE" description:"JSON file of pokemon to import at startup"`
}
