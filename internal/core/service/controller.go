package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

// Route is a logical console page.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
	RouteShops     Route = "/shops"
)

// Protected reports whether r requires an authenticated session.
func (r Route) Protected() bool {
	return r == RouteDashboard || r == RouteShops
}

// Controller is the root of a console session: it owns the Session value and
// guards routes with its derived authenticated flag.
type Controller struct {
	mu      sync.RWMutex
	session domain.Session
	tokens  ports.TokenStore
	log     zerolog.Logger
}

// NewController seeds the session from the persisted token. A store read
// failure leaves the session unauthenticated.
func NewController(ctx context.Context, tokens ports.TokenStore, log zerolog.Logger) *Controller {
	c := &Controller{tokens: tokens, log: log}

	token, ok, err := tokens.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("token store read failed, starting unauthenticated")
		return c
	}
	if ok {
		c.session = domain.NewSession(token)
	}
	return c
}

func (c *Controller) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Authenticated()
}

// OnLogin persists token and marks the session authenticated.
func (c *Controller) OnLogin(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrEmptyToken
	}
	if err := c.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Authenticate(token)
}

// OnLogout clears the persisted token and the session. The session is cleared
// even when the store fails so the operator is never left half logged in.
func (c *Controller) OnLogout(ctx context.Context) error {
	err := c.tokens.Clear(ctx)

	c.mu.Lock()
	c.session.Clear()
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Resolve returns the route that should actually be shown for a request to r.
func (c *Controller) Resolve(r Route) Route {
	authenticated := c.Authenticated()
	switch {
	case r == RouteLogin && authenticated:
		return RouteDashboard
	case r == RouteLogin:
		return RouteLogin
	case r.Protected() && authenticated:
		return r
	case r.Protected():
		return RouteLogin
	case authenticated:
		return RouteDashboard
	default:
		return RouteLogin
	}
}
