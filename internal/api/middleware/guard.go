package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
)

// GuardPage lets the request through only when the workspace controller
// resolves route to itself; otherwise it redirects to the resolved route.
func GuardPage(route service.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := WorkspaceFrom(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, string(service.RouteLogin))
			}
			if target := ws.Controller.Resolve(route); target != route {
				return c.Redirect(http.StatusSeeOther, string(target))
			}
			return next(c)
		}
	}
}

// RequireAuth rejects JSON requests of unauthenticated sessions.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := WorkspaceFrom(c)
			if !ok || !ws.Controller.Authenticated() {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
