package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
)

func testFactory(api *stubAPI, created *int, mu *sync.Mutex) WorkspaceFactory {
	return func(ctx context.Context, sessionID string) *Workspace {
		mu.Lock()
		*created++
		mu.Unlock()
		return NewWorkspace(ctx, WorkspaceDeps{
			SessionID:      sessionID,
			Tokens:         &stubTokens{},
			API:            api,
			CurrencyPrefix: "ETB",
			Log:            zerolog.Nop(),
		})
	}
}

func TestWorkspaces_GetReusesWorkspace(t *testing.T) {
	var created int
	var mu sync.Mutex
	ws := NewWorkspaces(testFactory(&stubAPI{}, &created, &mu), time.Hour, zerolog.Nop())

	a := ws.Get(context.Background(), "s1")
	b := ws.Get(context.Background(), "s1")
	c := ws.Get(context.Background(), "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, ws.Len())

	ws.Drop("s1")
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaces_ConcurrentGetSharesOne(t *testing.T) {
	var created int
	var mu sync.Mutex
	ws := NewWorkspaces(testFactory(&stubAPI{}, &created, &mu), time.Hour, zerolog.Nop())

	var wg sync.WaitGroup
	got := make([]*Workspace, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = ws.Get(context.Background(), "same")
		}(i)
	}
	wg.Wait()

	for _, w := range got {
		assert.Same(t, got[0], w)
	}
}

func TestWorkspaces_EvictIdle(t *testing.T) {
	var created int
	var mu sync.Mutex
	ws := NewWorkspaces(testFactory(&stubAPI{}, &created, &mu), time.Minute, zerolog.Nop())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return now }

	ws.Get(context.Background(), "old")
	now = now.Add(2 * time.Minute)
	ws.Get(context.Background(), "fresh")

	assert.Equal(t, 1, ws.Evict())
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaces_ReleaseOnDropAndEvict(t *testing.T) {
	var created int
	var mu sync.Mutex
	ws := NewWorkspaces(testFactory(&stubAPI{}, &created, &mu), time.Minute, zerolog.Nop())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return now }

	var released []string
	ws.OnRelease(func(sessionID string) { released = append(released, sessionID) })

	ws.Get(context.Background(), "dropped")
	ws.Get(context.Background(), "idle")
	ws.Drop("dropped")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, ws.Evict())
	assert.Equal(t, []string{"dropped", "idle"}, released)
	assert.Zero(t, ws.Len())
}

func TestWorkspace_LoginThenLogout(t *testing.T) {
	api := &stubAPI{
		loginFn:      func(context.Context, string, string) (string, error) { return "tok", nil },
		listWeeklyFn: func(context.Context, string) ([]domain.WeeklyCommission, error) { return weeks(), nil },
	}
	audit := &recordingAudit{}
	w := NewWorkspace(context.Background(), WorkspaceDeps{
		SessionID: "sid", Tokens: &stubTokens{}, API: api, Audit: audit, CurrencyPrefix: "ETB", Log: zerolog.Nop(),
	})

	_, err := w.Login.Submit(context.Background(), "admin", "pw")
	require.NoError(t, err)
	require.True(t, w.Controller.Authenticated())
	require.NoError(t, w.Shops.SelectShop(context.Background(), "s1"))

	require.NoError(t, w.Logout(context.Background()))
	assert.False(t, w.Controller.Authenticated())
	assert.Equal(t, RouteLogin, w.Controller.Resolve(RouteShops))
	assert.False(t, w.Commissions.Snapshot().Selected())
	assert.Empty(t, w.Shops.Snapshot().SelectedShopID)

	events := audit.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.AuditLogout, events[1].Action)
}

func TestWorkspace_Dashboard(t *testing.T) {
	api := &stubAPI{listShopsFn: func(context.Context) ([]domain.Shop, error) { return seededShops(), nil }}
	w := NewWorkspace(context.Background(), WorkspaceDeps{
		SessionID: "sid", Tokens: &stubTokens{token: "t"}, API: api, CurrencyPrefix: "ETB", Log: zerolog.Nop(),
	})

	d := w.Dashboard(context.Background())
	assert.True(t, d.Loaded)
	assert.Equal(t, "2", d.ShopCount)
	assert.Equal(t, "ETB13.50", d.TotalBalance)
	assert.Equal(t, 1, d.Prepaid)
	assert.Equal(t, 1, d.Postpaid)

	api.listShopsFn = func(context.Context) ([]domain.Shop, error) { return nil, errBoom }
	d = w.Dashboard(context.Background())
	assert.False(t, d.Loaded)
	assert.Equal(t, "—", d.ShopCount)
	assert.Equal(t, "—", d.TotalBalance)
}
