package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chirp-social/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl time.Duration) (*session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return session.NewStore(client, ttl), mr
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	token, err := store.Create(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := store.Lookup(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 42, userID)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	first, err := store.Create(context.Background(), 1)
	require.NoError(t, err)
	second, err := store.Create(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLookupUnknownToken(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	_, ok, err := store.Lookup(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDestroyIsIdempotent(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	token, err := store.Create(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, store.Destroy(context.Background(), token))

	_, ok, err := store.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Destroy(context.Background(), token))
	require.NoError(t, store.Destroy(context.Background(), "never-existed"))
}

func TestSessionExpires(t *testing.T) {
	store, mr := newStore(t, time.Minute)

	token, err := store.Create(context.Background(), 9)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, ok, "expired session is anonymous")
}
