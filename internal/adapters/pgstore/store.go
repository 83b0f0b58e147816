// internal/adapters/pgstore/store.go
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the pgx stdlib driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS blobs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

const (
	getBlob = `SELECT value FROM blobs WHERE key = $1`
	setBlob = `
		INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// Store keeps blobs in a single Postgres table. It deliberately exposes only
// the flat get/set contract: no transactions span the two ledger blobs.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Statically assert that *Store implements the BlobStore interface.
var _ ports.BlobStore = (*Store)(nil)

// New ensures the blob table exists and returns the store.
func New(ctx context.Context, db *sql.DB, logger *slog.Logger) (*Store, error) {
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("ensure blobs table: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "pgstore")),
	}, nil
}

// Open connects via the pgx stdlib driver and ensures the schema.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(ctx, db, logger)
}

// Get returns the blob at key, or found=false when it was never written.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getBlob, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		s.logger.ErrorContext(ctx, "failed to get blob",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", false, fmt.Errorf("postgres get error: %w", err)
	}
	return value, true, nil
}

// Set upserts the blob at key.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if _, err := s.db.ExecContext(ctx, setBlob, key, value); err != nil {
		s.logger.ErrorContext(ctx, "failed to set blob",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("postgres set error: %w", err)
	}
	return nil
}

// Ping checks that Postgres is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping error: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
