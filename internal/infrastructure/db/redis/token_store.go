package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bingo/shop-console/internal/core/ports"
)

// Sealer protects tokens at rest.
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// TokenStore keeps the shop API token of each console session in Redis.
// Key format: console:session:<session_id>:token
type TokenStore struct {
	client *redis.Client
	sealer Sealer
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore. Tokens expire after ttl; zero keeps
// them until cleared.
func NewTokenStore(client *redis.Client, sealer Sealer, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, sealer: sealer, ttl: ttl}
}

// ForSession returns the token store of one console session.
func (s *TokenStore) ForSession(sessionID string) ports.TokenStore {
	return &sessionTokens{store: s, key: key(sessionID)}
}

func key(sessionID string) string {
	return fmt.Sprintf("console:session:%s:token", sessionID)
}

type sessionTokens struct {
	store *TokenStore
	key   string
}

// Get returns ok=false for a missing key. A value that no longer opens (e.g.
// after a secret rotation) is treated as missing and removed.
func (t *sessionTokens) Get(ctx context.Context) (string, bool, error) {
	sealed, err := t.store.client.Get(ctx, t.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("token get: %w", err)
	}

	token, err := t.store.sealer.Open(sealed)
	if err != nil {
		_ = t.store.client.Del(ctx, t.key).Err()
		return "", false, nil
	}
	return token, token != "", nil
}

func (t *sessionTokens) Set(ctx context.Context, token string) error {
	sealed, err := t.store.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("token seal: %w", err)
	}
	if err := t.store.client.Set(ctx, t.key, sealed, t.store.ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

func (t *sessionTokens) Clear(ctx context.Context) error {
	if err := t.store.client.Del(ctx, t.key).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}
