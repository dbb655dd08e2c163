package database

import (
	"context"
	"fmt"
	"time"

	"movies-service/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the subset of *pgxpool.Pool the repositories use, so they can
// run against a mock pool in tests.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// schema is applied on startup; both tables are keyed by an opaque text id.
const schema = `
CREATE TABLE IF NOT EXISTS movie_infos (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	year         INTEGER NOT NULL,
	cast_members TEXT[] NOT NULL,
	release_date DATE NOT NULL
);
CREATE INDEX IF NOT EXISTS movie_infos_year_idx ON movie_infos (year);

CREATE TABLE IF NOT EXISTS reviews (
	id            TEXT PRIMARY KEY,
	movie_info_id TEXT NOT NULL,
	comment       TEXT NOT NULL DEFAULT '',
	rating        DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS reviews_movie_info_id_idx ON reviews (movie_info_id);
`

// InitPostgres opens the connection pool and makes sure the schema exists.
func InitPostgres(config utils.DatabaseConfig) (PgxIface, error) {
	connStr := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		config.User, config.Password, config.Name, config.Host, config.Port)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return pool, nil
}
