package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
)

// ShopHandler exposes the shop list view as JSON.
type ShopHandler struct{}

func NewShopHandler() *ShopHandler {
	return &ShopHandler{}
}

func shopsState(ws *service.Workspace) shopsResponse {
	return shopsResponse{
		ShopListState: ws.Shops.Snapshot(),
		Commissions:   ws.Commissions.Snapshot(),
	}
}

// List handles GET /api/v1/shops.
//
// @Summary      Refresh and return the shop list view
// @Tags         shops
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  shopsResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /shops [get]
func (h *ShopHandler) List(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Shops.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopsState(ws))
}

// Edit handles POST /api/v1/shops/:shop_id/edit.
//
// @Summary      Load a shop into the form
// @Tags         shops
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  path      string  true  "Shop id"
// @Success      200      {object}  shopsResponse
// @Failure      404      {object}  errorResponse
// @Router       /shops/{shop_id}/edit [post]
func (h *ShopHandler) Edit(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Shops.Edit(c.Param("shop_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopsState(ws))
}

// SubmitForm handles PUT /api/v1/shops/form: sets the form and submits it.
// The form is in edit mode when shop_id names a listed shop.
//
// @Summary      Create or update a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      shopFormRequest  true  "Shop form"
// @Success      200   {object}  shopsResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /shops/form [put]
func (h *ShopHandler) SubmitForm(c echo.Context) error {
	var req shopFormRequest
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
	ws.Shops.SetForm(req.toForm())
	if err := ws.Shops.SubmitForm(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopsState(ws))
}

// Delete handles DELETE /api/v1/shops/:shop_id?confirm=true.
//
// @Summary      Delete a shop
// @Tags         shops
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  path      string  true  "Shop id"
// @Param        confirm  query     bool    true  "Must be true"
// @Success      200      {object}  shopsResponse
// @Failure      400      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /shops/{shop_id} [delete]
func (h *ShopHandler) Delete(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Shops.Delete(c.Request().Context(), c.Param("shop_id"), confirmed); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopsState(ws))
}

// Select handles POST /api/v1/shops/:shop_id/select.
//
// @Summary      Select a shop and load its commissions
// @Tags         shops
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  path      string  true  "Shop id"
// @Success      200      {object}  shopsResponse
// @Failure      502      {object}  errorResponse
// @Router       /shops/{shop_id}/select [post]
func (h *ShopHandler) Select(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Shops.SelectShop(c.Request().Context(), c.Param("shop_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopsState(ws))
}

// SetDateRange handles POST /api/v1/shops/:shop_id/range.
//
// @Summary      Store the commission date filter of the selected shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  path      string            true  "Shop id"
// @Param        body     body      dateRangeRequest  true  "Date range"
// @Success      200      {object}  shopsResponse
// @Failure      409      {object}  errorResponse
// @Router       /shops/{shop_id}/range [post]
func (h *ShopHandler) SetDateRange(c echo.Context) error {
	var req dateRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if ws.Shops.Selected() != c.Param("shop_id") {
		return domain.ErrNoShopSelected
	}
	ws.Shops.SetDateRange(req.Start, req.End)
	return c.JSON(http.StatusOK, shopsState(ws))
}

// Ledger handles GET /api/v1/shops/:shop_id/ledger.
//
// @Summary      Commission ledger of a shop
// @Tags         commissions
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  path      string  true  "Shop id"
// @Success      200      {object}  ledgerResponse
// @Failure      502      {object}  errorResponse
// @Router       /shops/{shop_id}/ledger [get]
func (h *ShopHandler) Ledger(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	shopID := c.Param("shop_id")
	entries, err := ws.Commissions.Ledger(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ledgerResponse{ShopID: shopID, Commissions: entries})
}
