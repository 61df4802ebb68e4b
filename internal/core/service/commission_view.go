package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/metrics"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

const (
	msgLoadCommissionsFailed = "Failed to load commissions."
	msgMarkPaidFailed        = "Failed to mark week as paid."
	msgMarkPaidDone          = "Week marked as paid."
)

// CommissionRow is one rendered line of the commission table.
type CommissionRow struct {
	WeekID          string `json:"week_id"`
	Week            string `json:"week"`
	TotalCommission string `json:"total_commission"`
	TotalPayment    string `json:"total_payment"`
	Status          string `json:"status"`
	Paid            bool   `json:"paid"`
	CanMarkPaid     bool   `json:"can_mark_paid"`
}

// CommissionState is the rendered state of the commission table.
type CommissionState struct {
	ShopID  string          `json:"shop_id,omitempty"`
	Loading bool            `json:"loading"`
	Rows    []CommissionRow `json:"rows"`
	Error   string          `json:"error,omitempty"`
	Success string          `json:"success,omitempty"`
}

// Selected reports whether a shop is shown at all.
func (s CommissionState) Selected() bool { return s.ShopID != "" }

// CommissionView shows the weekly commissions of the selected shop.
//
// Every selection change bumps generation; a fetch remembers the generation it
// was issued under and its result is dropped if the selection moved on while
// it was in flight.
type CommissionView struct {
	mu         sync.Mutex
	shopID     string
	generation uint64
	loading    bool
	items      []domain.WeeklyCommission
	err        string
	success    string

	gateway   ports.CommissionGateway
	audit     ports.AuditRecorder
	sessionID string
	currency  string
	log       zerolog.Logger
}

func NewCommissionView(
	gateway ports.CommissionGateway,
	audit ports.AuditRecorder,
	sessionID, currencyPrefix string,
	log zerolog.Logger,
) *CommissionView {
	return &CommissionView{
		gateway:   gateway,
		audit:     audit,
		sessionID: sessionID,
		currency:  currencyPrefix,
		log:       log,
	}
}

// Show switches the view to shopID, discarding everything known about the
// previous shop, and fetches its commissions. An empty id resets the view.
func (v *CommissionView) Show(ctx context.Context, shopID string) error {
	if shopID == "" {
		v.Reset()
		return nil
	}

	v.mu.Lock()
	v.generation++
	v.shopID = shopID
	v.items = nil
	v.err = ""
	v.success = ""
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// Refresh re-fetches the commissions of the current shop.
func (v *CommissionView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	shopID, gen := v.shopID, v.generation
	if shopID == "" {
		v.mu.Unlock()
		return nil
	}
	v.loading = true
	v.mu.Unlock()

	items, err := v.gateway.ListWeeklyCommissions(ctx, shopID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		metrics.StaleCommissionResponsesTotal.Inc()
		v.log.Debug().Str("shop_id", shopID).Msg("stale commission response discarded")
		return nil
	}
	v.loading = false

	if err != nil {
		v.log.Error().Err(err).Str("shop_id", shopID).Msg("failed to fetch commissions")
		v.items = nil
		v.err = msgLoadCommissionsFailed
		v.success = ""
		return fmt.Errorf("list commissions: %w", err)
	}

	v.items = items
	v.err = ""
	return nil
}

// MarkPaid settles weekID of the current shop and refreshes the table.
func (v *CommissionView) MarkPaid(ctx context.Context, weekID string) error {
	v.mu.Lock()
	shopID, gen := v.shopID, v.generation
	v.mu.Unlock()

	if shopID == "" {
		return domain.ErrNoShopSelected
	}

	err := v.gateway.MarkWeekPaid(ctx, shopID, weekID)

	v.audit.Record(domain.AuditEvent{
		Action:    domain.AuditWeekPaid,
		SessionID: v.sessionID,
		ShopID:    shopID,
		WeekID:    weekID,
		Outcome:   domain.OutcomeOf(err),
	})
	metrics.CommissionPaymentsTotal.WithLabelValues(domain.OutcomeOf(err)).Inc()

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		if err != nil {
			return fmt.Errorf("mark week paid: %w", err)
		}
		return nil
	}
	if err != nil {
		v.log.Error().Err(err).Str("shop_id", shopID).Str("week_id", weekID).Msg("failed to mark week as paid")
		v.err = msgMarkPaidFailed
		v.success = ""
		v.mu.Unlock()
		return fmt.Errorf("mark week paid: %w", err)
	}
	v.success = msgMarkPaidDone
	v.err = ""
	v.mu.Unlock()

	v.log.Info().Str("shop_id", shopID).Str("week_id", weekID).Msg("week marked as paid")
	return v.Refresh(ctx)
}

// Reset unmounts the table: no shop, no rows, no messages.
func (v *CommissionView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.shopID = ""
	v.items = nil
	v.loading = false
	v.err = ""
	v.success = ""
}

func (v *CommissionView) Snapshot() CommissionState {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]CommissionRow, 0, len(v.items))
	for _, item := range v.items {
		status := "Unpaid"
		if item.Paid() {
			status = "Paid"
		}
		rows = append(rows, CommissionRow{
			WeekID:          item.WeekID,
			Week:            item.Week,
			TotalCommission: FormatAmount(v.currency, item.TotalCommission),
			TotalPayment:    FormatAmount(v.currency, item.TotalPayment),
			Status:          status,
			Paid:            item.Paid(),
			CanMarkPaid:     item.PaymentStatus == domain.PaymentUnpaid,
		})
	}

	return CommissionState{
		ShopID:  v.shopID,
		Loading: v.loading,
		Rows:    rows,
		Error:   v.err,
		Success: v.success,
	}
}

// Ledger fetches the commissions-map shape for shopID. It does not touch the
// table state.
func (v *CommissionView) Ledger(ctx context.Context, shopID string) (map[string]domain.CommissionEntry, error) {
	entries, err := v.gateway.CommissionLedger(ctx, shopID)
	if err != nil {
		v.log.Error().Err(err).Str("shop_id", shopID).Msg("failed to fetch commission ledger")
		return nil, fmt.Errorf("commission ledger: %w", err)
	}
	return entries, nil
}

// FormatAmount renders a currency amount with two decimals behind prefix.
func FormatAmount(prefix string, amount float64) string {
	return fmt.Sprintf("%s%.2f", prefix, amount)
}
