package service

import (
	"context"
	"errors"
	"sync"

	"github.com/bingo/shop-console/internal/core/domain"
)

var errBoom = errors.New("boom")

type stubAPI struct {
	loginFn       func(ctx context.Context, username, password string) (string, error)
	listShopsFn   func(ctx context.Context) ([]domain.Shop, error)
	createShopFn  func(ctx context.Context, req domain.CreateShopRequest) error
	updateShopFn  func(ctx context.Context, shopID string, req domain.UpdateShopRequest) error
	deleteShopFn  func(ctx context.Context, shopID string) error
	listWeeklyFn  func(ctx context.Context, shopID string) ([]domain.WeeklyCommission, error)
	markPaidFn    func(ctx context.Context, shopID, weekID string) error
	ledgerFn      func(ctx context.Context, shopID string) (map[string]domain.CommissionEntry, error)
	mu            sync.Mutex
	calls         []string
}

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAPI) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubAPI) Login(ctx context.Context, username, password string) (string, error) {
	s.record("login")
	return s.loginFn(ctx, username, password)
}

func (s *stubAPI) ListShops(ctx context.Context) ([]domain.Shop, error) {
	s.record("list_shops")
	if s.listShopsFn == nil {
		return nil, nil
	}
	return s.listShopsFn(ctx)
}

func (s *stubAPI) CreateShop(ctx context.Context, req domain.CreateShopRequest) error {
	s.record("create_shop")
	return s.createShopFn(ctx, req)
}

func (s *stubAPI) UpdateShop(ctx context.Context, shopID string, req domain.UpdateShopRequest) error {
	s.record("update_shop")
	return s.updateShopFn(ctx, shopID, req)
}

func (s *stubAPI) DeleteShop(ctx context.Context, shopID string) error {
	s.record("delete_shop")
	return s.deleteShopFn(ctx, shopID)
}

func (s *stubAPI) ListWeeklyCommissions(ctx context.Context, shopID string) ([]domain.WeeklyCommission, error) {
	s.record("list_commissions:" + shopID)
	return s.listWeeklyFn(ctx, shopID)
}

func (s *stubAPI) MarkWeekPaid(ctx context.Context, shopID, weekID string) error {
	s.record("mark_paid:" + shopID + ":" + weekID)
	return s.markPaidFn(ctx, shopID, weekID)
}

func (s *stubAPI) CommissionLedger(ctx context.Context, shopID string) (map[string]domain.CommissionEntry, error) {
	s.record("ledger:" + shopID)
	return s.ledgerFn(ctx, shopID)
}

type stubTokens struct {
	mu       sync.Mutex
	token    string
	getErr   error
	setErr   error
	clearErr error
}

func (s *stubTokens) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.token, s.token != "", nil
}

func (s *stubTokens) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.token = token
	return nil
}

func (s *stubTokens) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.clearErr
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingAudit) Record(e domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingAudit) Events() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}
