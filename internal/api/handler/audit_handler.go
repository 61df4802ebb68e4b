package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bingo/shop-console/internal/core/ports"
)

// AuditHandler lists the audit trail.
type AuditHandler struct {
	repo ports.AuditRepository
}

// NewAuditHandler accepts a nil repository when the audit trail is disabled.
func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /api/v1/audit.
//
// @Summary      Recent operator actions, newest first
// @Tags         audit
// @Produce      json
// @Security     SessionCookie
// @Param        shop_id  query     string  false  "Only events of this shop"
// @Param        limit    query     int     false  "Page size (1-100, default 50)"
// @Success      200      {object}  auditResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	if h.repo == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "audit trail disabled")
	}
	var q auditQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	events, err := h.repo.ListRecent(c.Request().Context(), ports.AuditFilter{ShopID: q.ShopID, Limit: q.Limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auditResponse{Events: events})
}
