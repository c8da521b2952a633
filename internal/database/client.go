package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
)

// New opens a driver for the configured database type. The returned driver
// owns the underlying pool and must be closed by the caller.
func New(ctx context.Context, cfg *models.DatabaseConfig) (*entsql.Driver, error) {
	logger := log.FromContext(ctx).WithField("db_type", cfg.DBType)
	var drv *entsql.Driver

	switch cfg.DBType {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection string: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		drv = entsql.OpenDB(dialect.Postgres, db)
	case "mysql":
		db, err := sql.Open(dialect.MySQL, MySQLDSN(cfg.ConnectionString))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		drv = entsql.OpenDB(dialect.MySQL, db)
	case "sqlite":
		db, err := sql.Open("sqlite", SQLiteDSN(cfg.ConnectionString))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		drv = entsql.OpenDB(dialect.SQLite, db)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}

	if err := drv.DB().PingContext(ctx); err != nil {
		drv.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.DBType, err)
	}

	logger.Debug("database connection established")
	return drv, nil
}

// InferType guesses the database type from a connection string. Anything
// that doesn't look like mysql or sqlite is treated as postgres.
func InferType(connectionString string) string {
	switch {
	case strings.HasPrefix(connectionString, "mysql://"), strings.Contains(connectionString, "@tcp("):
		return "mysql"
	case strings.HasPrefix(connectionString, "file:"),
		strings.HasPrefix(connectionString, "sqlite://"),
		strings.HasSuffix(connectionString, ".db"),
		strings.HasSuffix(connectionString, ".sqlite"),
		connectionString == ":memory:":
		return "sqlite"
	default:
		return "postgres"
	}
}

// MySQLDSN strips the URL scheme the go-sql-driver DSN format doesn't accept.
func MySQLDSN(connectionString string) string {
	return strings.TrimPrefix(connectionString, "mysql://")
}

// SQLiteDSN normalizes a sqlite connection string so foreign keys are
// enforced, which ent's migration requires.
func SQLiteDSN(connectionString string) string {
	dsn := strings.TrimPrefix(connectionString, "sqlite://")
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
