// Package postgres opens the application database.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
)

// Supported database/sql driver names.
const (
	DriverPGX = "pgx"
	DriverPQ  = "postgres"
)

//go:embed schema.sql
var schema string

// Options tunes the connection pool. Zero values keep database/sql defaults
// and the pgx driver.
type Options struct {
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverPGX
	}
	if driver != DriverPGX && driver != DriverPQ {
		return nil, fmt.Errorf("unsupported postgres driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the tables the stores use. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
