package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
)

func TestController_SeedsFromStore(t *testing.T) {
	c := NewController(context.Background(), &stubTokens{token: "t1"}, zerolog.Nop())
	assert.True(t, c.Authenticated())

	c = NewController(context.Background(), &stubTokens{}, zerolog.Nop())
	assert.False(t, c.Authenticated())
}

func TestController_StoreReadFailureStartsUnauthenticated(t *testing.T) {
	c := NewController(context.Background(), &stubTokens{token: "t1", getErr: errBoom}, zerolog.Nop())
	assert.False(t, c.Authenticated())
}

func TestController_LoginLogout(t *testing.T) {
	tokens := &stubTokens{}
	c := NewController(context.Background(), tokens, zerolog.Nop())

	require.NoError(t, c.OnLogin(context.Background(), "abc"))
	assert.True(t, c.Authenticated())
	assert.Equal(t, "abc", tokens.token)

	require.NoError(t, c.OnLogout(context.Background()))
	assert.False(t, c.Authenticated())
	assert.Empty(t, tokens.token)
}

func TestController_EmptyTokenRejected(t *testing.T) {
	c := NewController(context.Background(), &stubTokens{}, zerolog.Nop())
	assert.ErrorIs(t, c.OnLogin(context.Background(), ""), domain.ErrEmptyToken)
	assert.False(t, c.Authenticated())
}

func TestController_LogoutClearsSessionEvenWhenStoreFails(t *testing.T) {
	c := NewController(context.Background(), &stubTokens{token: "t", clearErr: errBoom}, zerolog.Nop())
	err := c.OnLogout(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, c.Authenticated())
}

func TestController_Resolve(t *testing.T) {
	anon := NewController(context.Background(), &stubTokens{}, zerolog.Nop())
	authed := NewController(context.Background(), &stubTokens{token: "t"}, zerolog.Nop())

	cases := []struct {
		name string
		c    *Controller
		in   Route
		want Route
	}{
		{"anon dashboard", anon, RouteDashboard, RouteLogin},
		{"anon shops", anon, RouteShops, RouteLogin},
		{"anon login", anon, RouteLogin, RouteLogin},
		{"anon unknown", anon, Route("/nope"), RouteLogin},
		{"authed login", authed, RouteLogin, RouteDashboard},
		{"authed shops", authed, RouteShops, RouteShops},
		{"authed dashboard", authed, RouteDashboard, RouteDashboard},
		{"authed unknown", authed, Route("/"), RouteDashboard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.Resolve(tc.in))
		})
	}
}
