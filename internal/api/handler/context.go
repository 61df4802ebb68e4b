package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bingo/shop-console/internal/api/middleware"
	"github.com/bingo/shop-console/internal/core/service"
)

// workspace returns the workspace attached by the session middleware. Its
// absence means the route was registered outside the session group.
func workspace(c echo.Context) (*service.Workspace, error) {
	ws, ok := middleware.WorkspaceFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return ws, nil
}

// SessionDropper forgets the workspace of a session.
type SessionDropper interface {
	Drop(sessionID string)
}

// CookieConfig names the session cookie so logout can expire it.
type CookieConfig struct {
	Name   string
	Secure bool
}
