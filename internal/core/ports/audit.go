package ports

import (
	"context"

	"github.com/bingo/shop-console/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditFilter narrows an audit listing.
type AuditFilter struct {
	ShopID string // optional
	Limit  int    // capped at 100 by the repository
}

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListRecent(ctx context.Context, filter AuditFilter) ([]domain.AuditEvent, error)
}
