package otpinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	id := kernel.Email("user@example.com")

	rec := record("hash-1")
	require.NoError(t, store.Put(ctx, id, rec))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-1", got.CodeHash)

	ok, err := store.CompareAndDelete(ctx, id, record("other"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.CompareAndDelete(ctx, id, rec)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_DropsAfterGrace(t *testing.T) {
	now := time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute, WithStoreClock(func() time.Time { return now }))
	ctx := context.Background()
	id := kernel.Email("user@example.com")

	rec := record("hash-1")
	require.NoError(t, store.Put(ctx, id, rec))

	now = rec.ExpiresAt.Add(30 * time.Second)
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = rec.ExpiresAt.Add(2 * time.Minute)
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	first, err := h.Hash("123456")
	require.NoError(t, err)
	second, err := h.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Matches(first, "123456"))
	assert.True(t, h.Matches(second, "123456"))
	assert.False(t, h.Matches(first, "654321"))
	assert.False(t, h.Matches("not-a-hash", "123456"))
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, 10, NewBcryptHasher(0).cost)
	assert.Equal(t, 10, NewBcryptHasher(99).cost)
}
