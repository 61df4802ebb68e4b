package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
	"github.com/bingo/shop-console/internal/infrastructure/tokenstore"
)

func workspaceWithToken(t *testing.T, token string) *service.Workspace {
	t.Helper()
	tokens := tokenstore.NewMemory()
	if token != "" {
		require.NoError(t, tokens.Set(context.Background(), token))
	}
	return service.NewWorkspace(context.Background(), service.WorkspaceDeps{SessionID: "sid", Tokens: tokens, Log: zerolog.Nop()})
}

func TestGuardPage_Allows(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/shops", nil), rec)
	WithWorkspace(c, "sid", workspaceWithToken(t, "tok"))

	called := false
	err := GuardPage(service.RouteShops)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardPage_RedirectsAnonymousToLogin(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	WithWorkspace(c, "sid", workspaceWithToken(t, ""))

	err := GuardPage(service.RouteDashboard)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestGuardPage_RedirectsAuthenticatedAwayFromLogin(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
	WithWorkspace(c, "sid", workspaceWithToken(t, "tok"))

	err := GuardPage(service.RouteLogin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/shops", nil), httptest.NewRecorder())
	WithWorkspace(c, "sid", workspaceWithToken(t, ""))

	err := RequireAuth()(func(c echo.Context) error { return nil })(c)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/shops", nil), httptest.NewRecorder())
	WithWorkspace(c, "sid", workspaceWithToken(t, "tok"))
	assert.NoError(t, RequireAuth()(func(c echo.Context) error { return nil })(c))
}
