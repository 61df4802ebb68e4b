package domain

import "time"

// AuditAction names an operator action recorded in the audit trail.
type AuditAction string

const (
	AuditLogin       AuditAction = "login"
	AuditLogout      AuditAction = "logout"
	AuditShopCreated AuditAction = "shop_created"
	AuditShopUpdated AuditAction = "shop_updated"
	AuditShopDeleted AuditAction = "shop_deleted"
	AuditWeekPaid    AuditAction = "week_paid"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuditEvent records one operator action against the shop API.
type AuditEvent struct {
	ID         string      `json:"id,omitempty"`
	Action     AuditAction `json:"action"`
	SessionID  string      `json:"session_id,omitempty"`
	Username   string      `json:"username,omitempty"`
	ShopID     string      `json:"shop_id,omitempty"`
	WeekID     string      `json:"week_id,omitempty"`
	Outcome    string      `json:"outcome"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// OutcomeOf maps an operation error to an audit outcome.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
