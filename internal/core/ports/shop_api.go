package ports

import (
	"context"

	"github.com/bingo/shop-console/internal/core/domain"
)

// AuthGateway exchanges operator credentials for a bearer token.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// ShopGateway covers the /shops endpoints of the shop API.
type ShopGateway interface {
	ListShops(ctx context.Context) ([]domain.Shop, error)
	CreateShop(ctx context.Context, req domain.CreateShopRequest) error
	UpdateShop(ctx context.Context, shopID string, req domain.UpdateShopRequest) error
	DeleteShop(ctx context.Context, shopID string) error
}

// CommissionGateway covers the /shop_commissions endpoints of the shop API.
type CommissionGateway interface {
	// ListWeeklyCommissions decodes the weekly_commissions response shape.
	ListWeeklyCommissions(ctx context.Context, shopID string) ([]domain.WeeklyCommission, error)
	MarkWeekPaid(ctx context.Context, shopID, weekID string) error
	// CommissionLedger decodes the commissions-map response shape.
	CommissionLedger(ctx context.Context, shopID string) (map[string]domain.CommissionEntry, error)
}

// ShopAPI is the full set of shop API operations a workspace needs.
type ShopAPI interface {
	AuthGateway
	ShopGateway
	CommissionGateway
}
