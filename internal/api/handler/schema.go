package handler

import (
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/service"
)

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// shopFormRequest mirrors the shop form. Numbers travel as text, exactly as
// typed; the console parses them.
type shopFormRequest struct {
	ShopID      string `json:"shop_id"      form:"shop_id"`
	Username    string `json:"username"     form:"username"`
	Password    string `json:"password"     form:"password"`
	Balance     string `json:"balance"      form:"balance"`
	BillingType string `json:"billing_type" form:"billing_type" validate:"omitempty,oneof=prepaid postpaid"`
}

func (r shopFormRequest) toForm() domain.ShopForm {
	return domain.ShopForm{
		ShopID:      r.ShopID,
		Username:    r.Username,
		Password:    r.Password,
		Balance:     r.Balance,
		BillingType: r.BillingType,
	}
}

type dateRangeRequest struct {
	Start string `json:"start" form:"start"`
	End   string `json:"end"   form:"end"`
}

type auditQuery struct {
	ShopID string `query:"shop_id"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// --- Responses ---

type sessionResponse struct {
	SessionID     string             `json:"session_id"`
	Authenticated bool               `json:"authenticated"`
	Login         service.LoginState `json:"login"`
}

type loginResponse struct {
	Route string `json:"route"`
}

type shopsResponse struct {
	service.ShopListState
	Commissions service.CommissionState `json:"commissions"`
}

type ledgerResponse struct {
	ShopID      string                            `json:"shop_id"`
	Commissions map[string]domain.CommissionEntry `json:"commissions"`
}

type auditResponse struct {
	Events []domain.AuditEvent `json:"events"`
}
