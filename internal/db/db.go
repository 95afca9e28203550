// Package db provides PostgreSQL access for storage slots.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS storage_slots (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Slot is one stored key and its JSON document.
type Slot struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the storage_slots table when it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createSlotsTable); err != nil {
		return fmt.Errorf("failed to create storage_slots table: %w", err)
	}
	return nil
}

// GetSlot returns the slot for key, or nil if it does not exist.
func (db *DB) GetSlot(ctx context.Context, key string) (*Slot, error) {
	var s Slot
	err := db.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM storage_slots WHERE key = $1`,
		key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return &s, nil
}

// PutSlot stores value under key, replacing any previous value.
// value must be valid JSON.
func (db *DB) PutSlot(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO storage_slots (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put slot %s: %w", key, err)
	}
	return nil
}

// DeleteSlot removes key. Deleting a missing key is not an error.
func (db *DB) DeleteSlot(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM storage_slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
