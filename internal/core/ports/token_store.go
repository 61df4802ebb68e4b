package ports

import "context"

// TokenStore persists the single bearer token of one console session.
// Implementations are durable across restarts of the process that reads them
// and are scoped (per browser session or per API origin).
type TokenStore interface {
	// Get returns the persisted token; ok is false when none is stored.
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
