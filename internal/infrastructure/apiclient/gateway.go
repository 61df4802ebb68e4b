package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

// Gateway maps the shop API endpoints onto typed calls.
type Gateway struct {
	client *Client
}

var _ ports.ShopAPI = (*Gateway)(nil)

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type weeklyCommissionsResponse struct {
	WeeklyCommissions []domain.WeeklyCommission `json:"weekly_commissions"`
}

func (g *Gateway) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := g.client.Post(ctx, "/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response carries no token", domain.ErrUpstream)
	}
	return resp.Token, nil
}

func (g *Gateway) ListShops(ctx context.Context) ([]domain.Shop, error) {
	var shops []domain.Shop
	if err := g.client.Get(ctx, "/shops", &shops); err != nil {
		return nil, err
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	return shops, nil
}

func (g *Gateway) CreateShop(ctx context.Context, req domain.CreateShopRequest) error {
	return g.client.Post(ctx, "/shops", req, nil)
}

func (g *Gateway) UpdateShop(ctx context.Context, shopID string, req domain.UpdateShopRequest) error {
	return g.client.Put(ctx, shopPath(shopID), req, nil)
}

func (g *Gateway) DeleteShop(ctx context.Context, shopID string) error {
	return g.client.Delete(ctx, shopPath(shopID), nil)
}

func (g *Gateway) ListWeeklyCommissions(ctx context.Context, shopID string) ([]domain.WeeklyCommission, error) {
	var resp weeklyCommissionsResponse
	if err := g.client.Get(ctx, commissionsPath(shopID), &resp); err != nil {
		return nil, err
	}
	if resp.WeeklyCommissions == nil {
		return []domain.WeeklyCommission{}, nil
	}
	return resp.WeeklyCommissions, nil
}

func (g *Gateway) MarkWeekPaid(ctx context.Context, shopID, weekID string) error {
	path := commissionsPath(shopID) + "/pay/" + url.PathEscape(weekID)
	return g.client.Post(ctx, path, nil, nil)
}

// CommissionLedger reads the commissions-map shape of the commissions
// endpoint. Entries without a round_id fall back to their map key.
func (g *Gateway) CommissionLedger(ctx context.Context, shopID string) (map[string]domain.CommissionEntry, error) {
	raw, err := g.client.DoRaw(ctx, http.MethodGet, commissionsPath(shopID), nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: commission ledger is not valid JSON", domain.ErrUpstream)
	}

	entries := map[string]domain.CommissionEntry{}
	commissions := gjson.GetBytes(raw, "commissions")
	if !commissions.IsObject() {
		return entries, nil
	}
	commissions.ForEach(func(key, value gjson.Result) bool {
		roundID := value.Get("round_id").String()
		if roundID == "" {
			roundID = key.String()
		}
		entries[key.String()] = domain.CommissionEntry{
			RoundID: roundID,
			Amount:  value.Get("amount").Float(),
		}
		return true
	})
	return entries, nil
}

func shopPath(shopID string) string {
	return "/shops/" + url.PathEscape(shopID)
}

func commissionsPath(shopID string) string {
	return "/shop_commissions/" + url.PathEscape(shopID)
}
