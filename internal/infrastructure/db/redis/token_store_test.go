package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/pkg/crypto"
)

func TestKeyFormat(t *testing.T) {
	assert.Equal(t, "console:session:abc:token", key("abc"))
}

// Runs against a live Redis when REDIS_TEST_ADDR is set.
func TestTokenStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	k, err := crypto.DeriveKey([]byte("test-secret"), crypto.PurposeTokenSeal)
	require.NoError(t, err)
	sealer, err := crypto.NewSealer(k)
	require.NoError(t, err)

	store := NewTokenStore(client, sealer, time.Minute)
	sid := uuid.NewString()
	tokens := store.ForSession(sid)

	_, ok, err := tokens.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tokens.Set(ctx, "tok"))
	raw, err := client.Get(ctx, key(sid)).Result()
	require.NoError(t, err)
	assert.NotEqual(t, "tok", raw)

	got, ok, err := tokens.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)

	other := store.ForSession(uuid.NewString())
	_, ok, err = other.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tokens.Clear(ctx))
	_, ok, err = tokens.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
