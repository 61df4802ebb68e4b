package service

import (
	"context"
	"strconv"

	"github.com/bingo/shop-console/internal/core/domain"
)

const placeholder = "—"

// DashboardState summarises the shop list for the landing page.
type DashboardState struct {
	Loaded       bool   `json:"loaded"`
	ShopCount    string `json:"shop_count"`
	TotalBalance string `json:"total_balance"`
	Prepaid      int    `json:"prepaid"`
	Postpaid     int    `json:"postpaid"`
}

// Dashboard refreshes the shop list and summarises it. When the list cannot
// be fetched the figures render as placeholders.
func (w *Workspace) Dashboard(ctx context.Context) DashboardState {
	if err := w.Shops.Refresh(ctx); err != nil {
		return DashboardState{ShopCount: placeholder, TotalBalance: placeholder}
	}
	return Summarize(w.Shops.Snapshot().Shops, w.Commissions.currency)
}

// Summarize computes the dashboard figures of shops.
func Summarize(shops []domain.Shop, currencyPrefix string) DashboardState {
	state := DashboardState{Loaded: true}
	var total float64
	for _, s := range shops {
		total += s.Balance
		switch s.BillingType {
		case domain.BillingPrepaid:
			state.Prepaid++
		case domain.BillingPostpaid:
			state.Postpaid++
		}
	}
	state.ShopCount = strconv.Itoa(len(shops))
	state.TotalBalance = FormatAmount(currencyPrefix, total)
	return state
}
