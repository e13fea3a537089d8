package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageRepo_SetAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStorageRepo(db)
	ctx := context.Background()

	err := repo.Set(ctx, "api_keys", `{"version":1}`)
	require.NoError(t, err)

	val, found, err := repo.Get(ctx, "api_keys")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"version":1}`, val)
}

func TestStorageRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStorageRepo(db)

	val, found, err := repo.Get(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", val)
}

func TestStorageRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStorageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "api_keys", "old"))
	require.NoError(t, repo.Set(ctx, "api_keys", "new"))

	val, found, err := repo.Get(ctx, "api_keys")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", val)
}

func TestStorageRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStorageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "api_keys", "value"))
	require.NoError(t, repo.Delete(ctx, "api_keys"))

	_, found, err := repo.Get(ctx, "api_keys")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorageRepo_DeleteMissingIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStorageRepo(db)

	err := repo.Delete(context.Background(), "nonexistent")
	require.NoError(t, err)
}
