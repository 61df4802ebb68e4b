package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/middleware"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
)

var billingTypes = []string{string(domain.BillingPrepaid), string(domain.BillingPostpaid)}

type shopsPage struct {
	Shops        service.ShopListState
	Commissions  service.CommissionState
	BillingTypes []string
}

type confirmDeletePage struct {
	ShopID string
}

// PageHandler serves the server-rendered console. Every mutation answers
// with a redirect back to the page it came from.
type PageHandler struct {
	workspaces SessionDropper
	cookie     CookieConfig
	log        zerolog.Logger
}

func NewPageHandler(workspaces SessionDropper, cookie CookieConfig, log zerolog.Logger) *PageHandler {
	return &PageHandler{workspaces: workspaces, cookie: cookie, log: log}
}

func header(ws *service.Workspace, title, active string) HeaderData {
	return HeaderData{Title: title, Authenticated: ws.Controller.Authenticated(), Active: active}
}

func backToShops(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, string(service.RouteShops))
}

// Root handles GET /.
func (h *PageHandler) Root(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, string(ws.Controller.Resolve(service.Route(c.Request().URL.Path))))
}

// LoginPage handles GET /login.
func (h *PageHandler) LoginPage(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "login", Page[service.LoginState]{
		Header:  header(ws, "Login", "login"),
		Content: ws.Login.Snapshot(),
	})
}

// Login handles POST /login.
func (h *PageHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	route, err := ws.Login.Submit(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.Render(http.StatusUnauthorized, "login", Page[service.LoginState]{
			Header:  header(ws, "Login", "login"),
			Content: ws.Login.Snapshot(),
		})
	}
	return c.Redirect(http.StatusSeeOther, string(route))
}

// Logout handles POST /logout.
func (h *PageHandler) Logout(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Logout(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Str("session_id", ws.ID).Msg("logout could not clear the stored token")
	}
	h.workspaces.Drop(ws.ID)
	middleware.ExpireSession(c, h.cookie.Name, h.cookie.Secure)
	return c.Redirect(http.StatusSeeOther, string(service.RouteLogin))
}

// Dashboard handles GET /dashboard.
func (h *PageHandler) Dashboard(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "dashboard", Page[service.DashboardState]{
		Header:  header(ws, "Dashboard", "dashboard"),
		Content: ws.Dashboard(c.Request().Context()),
	})
}

// Shops handles GET /shops.
func (h *PageHandler) Shops(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	// A failed refresh is already part of the rendered state.
	_ = ws.Shops.Refresh(c.Request().Context())

	return c.Render(http.StatusOK, "shops", Page[shopsPage]{
		Header: header(ws, "Shops", "shops"),
		Content: shopsPage{
			Shops:        ws.Shops.Snapshot(),
			Commissions:  ws.Commissions.Snapshot(),
			BillingTypes: billingTypes,
		},
	})
}

// SubmitForm handles POST /shops/form.
func (h *PageHandler) SubmitForm(c echo.Context) error {
	var req shopFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	ws.Shops.SetForm(req.toForm())
	_ = ws.Shops.SubmitForm(c.Request().Context())
	return backToShops(c)
}

// ResetForm handles POST /shops/form/reset.
func (h *PageHandler) ResetForm(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	ws.Shops.ResetForm()
	return backToShops(c)
}

// Edit handles POST /shops/:shop_id/edit.
func (h *PageHandler) Edit(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	_ = ws.Shops.Edit(c.Param("shop_id"))
	return backToShops(c)
}

// Select handles POST /shops/:shop_id/select.
func (h *PageHandler) Select(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	_ = ws.Shops.SelectShop(c.Request().Context(), c.Param("shop_id"))
	return backToShops(c)
}

// Delete handles POST /shops/:shop_id/delete. Without confirm=yes it asks
// for confirmation first.
func (h *PageHandler) Delete(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	shopID := c.Param("shop_id")
	if c.FormValue("confirm") != "yes" {
		return c.Render(http.StatusOK, "confirm_delete", Page[confirmDeletePage]{
			Header:  header(ws, "Delete shop", "shops"),
			Content: confirmDeletePage{ShopID: shopID},
		})
	}
	_ = ws.Shops.Delete(c.Request().Context(), shopID, true)
	return backToShops(c)
}

// SetDateRange handles POST /shops/:shop_id/range.
func (h *PageHandler) SetDateRange(c echo.Context) error {
	var req dateRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if ws.Shops.Selected() == c.Param("shop_id") {
		ws.Shops.SetDateRange(req.Start, req.End)
	}
	return backToShops(c)
}

// Pay handles POST /shops/:shop_id/commissions/:week_id/pay. A request for a
// shop that is no longer selected comes from a stale page and is ignored.
func (h *PageHandler) Pay(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if ws.Shops.Selected() != c.Param("shop_id") {
		return backToShops(c)
	}
	_ = ws.Commissions.MarkPaid(c.Request().Context(), c.Param("week_id"))
	return backToShops(c)
}
