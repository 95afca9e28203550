//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestSlotCRUD_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	slot, err := db.GetSlot(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, slot)

	require.NoError(t, db.PutSlot(ctx, key, []byte(`[{"id":"a"}]`)))
	require.NoError(t, db.PutSlot(ctx, key, []byte(`[{"id":"b"}]`)))

	slot, err = db.GetSlot(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.JSONEq(t, `[{"id":"b"}]`, string(slot.Value))
	assert.False(t, slot.UpdatedAt.IsZero())

	require.NoError(t, db.DeleteSlot(ctx, key))
	require.NoError(t, db.DeleteSlot(ctx, key))

	slot, err = db.GetSlot(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, slot)
}
