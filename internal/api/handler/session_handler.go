package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bingo/shop-console/internal/api/middleware"
)

// SessionHandler exposes the login view and root controller as JSON.
type SessionHandler struct {
	workspaces SessionDropper
	cookie     CookieConfig
}

func NewSessionHandler(workspaces SessionDropper, cookie CookieConfig) *SessionHandler {
	return &SessionHandler{workspaces: workspaces, cookie: cookie}
}

// Status handles GET /api/v1/session.
//
// @Summary      Current console session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Status(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		SessionID:     ws.ID,
		Authenticated: ws.Controller.Authenticated(),
		Login:         ws.Login.Snapshot(),
	})
}

// Login handles POST /api/v1/session.
//
// @Summary      Log in to the shop API
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ws, err := workspace(c)
	if err != nil {
		return err
	}
	route, err := ws.Login.Submit(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Route: string(route)})
}

// Logout handles DELETE /api/v1/session.
//
// @Summary      Log out
// @Tags         session
// @Success      204
// @Router       /session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	logoutErr := ws.Logout(c.Request().Context())
	h.workspaces.Drop(ws.ID)
	middleware.ExpireSession(c, h.cookie.Name, h.cookie.Secure)
	if logoutErr != nil {
		return logoutErr
	}
	return c.NoContent(http.StatusNoContent)
}
