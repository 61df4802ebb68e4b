package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CommissionHandler exposes the commission view of the selected shop as JSON.
type CommissionHandler struct{}

func NewCommissionHandler() *CommissionHandler {
	return &CommissionHandler{}
}

// List handles GET /api/v1/commissions.
//
// @Summary      Refresh and return the commissions of the selected shop
// @Tags         commissions
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  service.CommissionState
// @Failure      502  {object}  errorResponse
// @Router       /commissions [get]
func (h *CommissionHandler) List(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Commissions.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ws.Commissions.Snapshot())
}

// Pay handles POST /api/v1/commissions/:week_id/pay.
//
// @Summary      Mark a week of the selected shop as paid
// @Tags         commissions
// @Produce      json
// @Security     SessionCookie
// @Param        week_id  path      string  true  "Week id"
// @Success      200      {object}  service.CommissionState
// @Failure      409      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /commissions/{week_id}/pay [post]
func (h *CommissionHandler) Pay(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}
	if err := ws.Commissions.MarkPaid(c.Request().Context(), c.Param("week_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ws.Commissions.Snapshot())
}
