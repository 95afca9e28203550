package storage

import (
	"context"
	"fmt"

	"github.com/jonathan/placement-readiness/internal/db"
)

// Postgres stores slots in the storage_slots table.
type Postgres struct {
	db *db.DB
}

// NewPostgres connects and creates the slots table if needed.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	conn, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return &Postgres{db: conn}, nil
}

// Get returns the value stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	slot, err := p.db.GetSlot(ctx, key)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	return slot.Value, nil
}

// Set upserts value under key. Postgres requires value to be valid JSON.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if err := p.db.PutSlot(ctx, key, value); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

// Delete removes key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.db.DeleteSlot(ctx, key)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
