package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0))
	assert.Equal(t, 50, ClampLimit(-3))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, 100, ClampLimit(1000))
}

func TestAuditDocMapping(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e := domain.AuditEvent{
		Action: domain.AuditWeekPaid, SessionID: "sid", ShopID: "s1", WeekID: "w1",
		Outcome: domain.OutcomeSuccess, OccurredAt: at,
	}
	back := toAuditDoc(&e).toDomain()
	back.ID = ""
	assert.Equal(t, e, back)
}

// Runs against a live MongoDB when MONGO_TEST_URI is set.
func TestAuditRepository_InsertAndList(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "shop_console_test_" + uuid.NewString()[:8]})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	repo := NewAuditRepository(db)
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, shop := range []string{"s1", "s2", "s1"} {
		e := &domain.AuditEvent{
			Action: domain.AuditShopUpdated, ShopID: shop, Outcome: domain.OutcomeSuccess,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Insert(ctx, e))
		assert.NotEmpty(t, e.ID)
	}

	all, err := repo.ListRecent(ctx, ports.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].OccurredAt.After(all[2].OccurredAt))

	s1, err := repo.ListRecent(ctx, ports.AuditFilter{ShopID: "s1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, s1, 1)
	assert.Equal(t, base.Add(2*time.Second), s1[0].OccurredAt.UTC())
}
