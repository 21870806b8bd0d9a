package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store keeps session identities in Redis with a TTL. A session maps an
// opaque token to a user ID; deleting the key is what logs a user out, so
// revocation is immediate on every node sharing the Redis instance.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed session store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Create writes a token -> userID mapping with TTL and returns the token
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.client.Set(ctx, keyPrefix+token, value, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup resolves a token to a user ID. The second return value is false
// when the token is unknown or expired.
func (s *Store) Lookup(ctx context.Context, token string) (uint, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return uint(userID), true, nil
}

// Destroy removes a token mapping. Destroying an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
