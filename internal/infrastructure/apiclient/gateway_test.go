package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newTestGateway(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Gateway, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewGateway(New(Config{BaseURL: srv.URL}, nil, zerolog.Nop())), &reqs
}

func TestGateway_Login(t *testing.T) {
	g, reqs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"t-123"}`))
	})

	token, err := g.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t-123", token)
	assert.Equal(t, recordedRequest{
		Method: http.MethodPost, Path: "/login", Body: map[string]any{"username": "admin", "password": "pw"},
	}, (*reqs)[0])
}

func TestGateway_LoginWithoutTokenFails(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := g.Login(context.Background(), "admin", "pw")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGateway_ListShops(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"shop_id":"s1","username":"a","balance":12.5,"billing_type":"postpaid"}]`))
	})

	shops, err := g.ListShops(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Shop{{ShopID: "s1", Username: "a", Balance: 12.5, BillingType: domain.BillingPostpaid}}, shops)
}

func TestGateway_UpdateShopSendsPartialPayloadAndEscapesID(t *testing.T) {
	g, reqs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	balance := 5.0
	err := g.UpdateShop(context.Background(), "shop/1 x", domain.UpdateShopRequest{Username: "u", Balance: &balance})
	require.NoError(t, err)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/shops/shop%2F1%20x", got.Path)
	assert.Equal(t, map[string]any{"username": "u", "balance": 5.0}, got.Body)
}

func TestGateway_DeleteShop(t *testing.T) {
	g, reqs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, g.DeleteShop(context.Background(), "s1"))
	assert.Equal(t, http.MethodDelete, (*reqs)[0].Method)
	assert.Equal(t, "/shops/s1", (*reqs)[0].Path)
}

func TestGateway_WeeklyCommissionsAndPay(t *testing.T) {
	g, reqs := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"weekly_commissions":[{"week_id":"w1","week":"2024-W01","total_commission":1.5,"total_payment":10,"payment_status":"unpaid"}]}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	weeks, err := g.ListWeeklyCommissions(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, domain.PaymentUnpaid, weeks[0].PaymentStatus)

	require.NoError(t, g.MarkWeekPaid(context.Background(), "s1", "w1"))
	assert.Equal(t, recordedRequest{Method: http.MethodPost, Path: "/shop_commissions/s1/pay/w1"}, (*reqs)[1])
}

func TestGateway_WeeklyCommissionsMissingKeyIsEmpty(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"commissions":{}}`))
	})
	weeks, err := g.ListWeeklyCommissions(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, weeks)
}

func TestGateway_CommissionLedger(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"commissions":{"r1":{"round_id":"r1","amount":4.25},"r2":{"amount":1}}}`))
	})

	entries, err := g.CommissionLedger(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.CommissionEntry{
		"r1": {RoundID: "r1", Amount: 4.25},
		"r2": {RoundID: "r2", Amount: 1},
	}, entries)
}

func TestGateway_CommissionLedgerOtherShapeIsEmpty(t *testing.T) {
	g, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weekly_commissions":[]}`))
	})
	entries, err := g.CommissionLedger(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
