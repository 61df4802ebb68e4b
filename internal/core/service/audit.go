package service

import "github.com/bingo/shop-console/internal/core/domain"

// NopAuditRecorder discards every event.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(domain.AuditEvent) {}
