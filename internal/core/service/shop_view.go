package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/metrics"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

const (
	msgLoadShopsFailed   = "Failed to load shops."
	msgCreateFailed      = "Failed to create shop. Please check your inputs."
	msgCreated           = "Shop created successfully."
	msgUpdateFailed      = "Failed to update shop."
	msgUpdated           = "Shop updated successfully."
	msgDeleteFailed      = "Failed to delete shop."
	msgDeleted           = "Shop deleted successfully."
	msgInvalidBalance    = "Invalid balance value."
	msgInvalidBilling    = "Invalid billing type."
	msgMissingFields     = "All fields are required."
	mutationResultReject = "rejected"
)

// DateRange holds the raw inputs of the commission date filter.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShopListState is the rendered state of the shops page.
type ShopListState struct {
	Shops          []domain.Shop   `json:"shops"`
	Form           domain.ShopForm `json:"form"`
	Editing        bool            `json:"editing"`
	Error          string          `json:"error,omitempty"`
	Success        string          `json:"success,omitempty"`
	SelectedShopID string          `json:"selected_shop_id,omitempty"`
	DateRange      DateRange       `json:"date_range"`
}

// ShopListView owns the cached shop list, the create/edit form and the current
// selection. The commission table of the selected shop is delegated to
// commissions.
type ShopListView struct {
	mu        sync.Mutex
	shops     []domain.Shop
	form      domain.ShopForm
	err       string
	success   string
	selected  string
	dateRange DateRange

	// listSeq orders concurrent refreshes; only the newest result is applied.
	listSeq     uint64
	appliedSeq  uint64
	gateway     ports.ShopGateway
	commissions *CommissionView
	audit       ports.AuditRecorder
	sessionID   string
	log         zerolog.Logger
}

func NewShopListView(
	gateway ports.ShopGateway,
	commissions *CommissionView,
	audit ports.AuditRecorder,
	sessionID string,
	log zerolog.Logger,
) *ShopListView {
	return &ShopListView{
		form:        domain.NewShopForm(),
		gateway:     gateway,
		commissions: commissions,
		audit:       audit,
		sessionID:   sessionID,
		log:         log,
	}
}

// Refresh replaces the cached list with the server's current one.
func (v *ShopListView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.listSeq++
	seq := v.listSeq
	v.mu.Unlock()

	shops, err := v.gateway.ListShops(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	// A newer listing already landed; an older result must not overwrite it.
	stale := seq < v.appliedSeq
	if err != nil {
		v.log.Error().Err(err).Bool("stale", stale).Msg("failed to fetch shops")
		if !stale {
			v.setError(msgLoadShopsFailed)
		}
		return fmt.Errorf("list shops: %w", err)
	}
	if stale {
		return nil
	}
	v.appliedSeq = seq
	if shops == nil {
		shops = []domain.Shop{}
	}
	v.shops = shops
	if v.err == msgLoadShopsFailed {
		v.err = ""
	}
	return nil
}

// SetForm copies operator input into the form. While editing, the shop id
// stays the one of the row being edited.
func (v *ShopListView) SetForm(form domain.ShopForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.editing() {
		form.ShopID = v.form.ShopID
	}
	v.form = form
}

// Edit loads a cached row into the form.
func (v *ShopListView) Edit(shopID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	shop, ok := v.find(shopID)
	if !ok {
		return domain.ErrShopNotFound
	}
	v.form = domain.FormFromShop(shop)
	return nil
}

func (v *ShopListView) ResetForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = domain.NewShopForm()
}

// SubmitForm creates a shop, or updates one when the form is in edit mode.
func (v *ShopListView) SubmitForm(ctx context.Context) error {
	v.mu.Lock()
	form, editing := v.form, v.editing()
	v.mu.Unlock()

	if editing {
		return v.update(ctx, form)
	}
	return v.create(ctx, form)
}

func (v *ShopListView) create(ctx context.Context, form domain.ShopForm) error {
	req, err := form.CreateRequest()
	if err != nil {
		v.reject("create", err)
		return err
	}

	err = v.gateway.CreateShop(ctx, req)
	v.recordMutation("create", domain.AuditShopCreated, req.ShopID, err)
	if err != nil {
		v.log.Error().Err(err).Str("shop_id", req.ShopID).Msg("failed to create shop")
		v.withLock(func() { v.setError(msgCreateFailed) })
		return fmt.Errorf("create shop: %w", err)
	}

	v.log.Info().Str("shop_id", req.ShopID).Msg("shop created")
	v.withLock(func() {
		v.form = domain.NewShopForm()
		v.setSuccess(msgCreated)
	})
	v.refreshAfterMutation(ctx)
	return nil
}

func (v *ShopListView) update(ctx context.Context, form domain.ShopForm) error {
	req, err := form.UpdateRequest()
	if err != nil {
		v.reject("update", err)
		return err
	}

	err = v.gateway.UpdateShop(ctx, form.ShopID, req)
	v.recordMutation("update", domain.AuditShopUpdated, form.ShopID, err)
	if err != nil {
		v.log.Error().Err(err).Str("shop_id", form.ShopID).Msg("failed to update shop")
		v.withLock(func() { v.setError(msgUpdateFailed) })
		return fmt.Errorf("update shop: %w", err)
	}

	v.log.Info().Str("shop_id", form.ShopID).Msg("shop updated")
	v.withLock(func() {
		v.form = domain.NewShopForm()
		v.setSuccess(msgUpdated)
	})
	v.refreshAfterMutation(ctx)
	return nil
}

// Delete removes a shop. Without confirmation nothing is sent.
func (v *ShopListView) Delete(ctx context.Context, shopID string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	err := v.gateway.DeleteShop(ctx, shopID)
	v.recordMutation("delete", domain.AuditShopDeleted, shopID, err)
	if err != nil {
		v.log.Error().Err(err).Str("shop_id", shopID).Msg("failed to delete shop")
		v.withLock(func() { v.setError(msgDeleteFailed) })
		return fmt.Errorf("delete shop: %w", err)
	}

	v.log.Info().Str("shop_id", shopID).Msg("shop deleted")
	var wasSelected bool
	v.withLock(func() {
		v.setSuccess(msgDeleted)
		if v.selected == shopID {
			wasSelected = true
			v.selected = ""
			v.dateRange = DateRange{}
		}
	})
	if wasSelected {
		v.commissions.Reset()
	}
	v.refreshAfterMutation(ctx)
	return nil
}

// SelectShop makes shopID the selected shop and loads its commissions.
func (v *ShopListView) SelectShop(ctx context.Context, shopID string) error {
	v.withLock(func() {
		v.selected = shopID
		v.dateRange = DateRange{}
	})
	return v.commissions.Show(ctx, shopID)
}

// SetDateRange stores the date filter inputs of the current selection.
func (v *ShopListView) SetDateRange(start, end string) {
	v.withLock(func() { v.dateRange = DateRange{Start: start, End: end} })
}

func (v *ShopListView) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

func (v *ShopListView) Snapshot() ShopListState {
	v.mu.Lock()
	defer v.mu.Unlock()

	shops := make([]domain.Shop, len(v.shops))
	copy(shops, v.shops)
	return ShopListState{
		Shops:          shops,
		Form:           v.form,
		Editing:        v.editing(),
		Error:          v.err,
		Success:        v.success,
		SelectedShopID: v.selected,
		DateRange:      v.dateRange,
	}
}

// Reset returns the view to its initial state, e.g. after logout.
func (v *ShopListView) Reset() {
	v.withLock(func() {
		v.shops = nil
		v.form = domain.NewShopForm()
		v.err = ""
		v.success = ""
		v.selected = ""
		v.dateRange = DateRange{}
	})
	v.commissions.Reset()
}

func (v *ShopListView) refreshAfterMutation(ctx context.Context) {
	if err := v.Refresh(ctx); err != nil {
		v.log.Warn().Err(err).Msg("shop list refresh after mutation failed")
	}
}

func (v *ShopListView) reject(op string, err error) {
	metrics.ShopMutationsTotal.WithLabelValues(op, mutationResultReject).Inc()
	v.log.Debug().Err(err).Str("op", op).Msg("shop form rejected")
	v.withLock(func() { v.setError(validationMessage(err)) })
}

func (v *ShopListView) recordMutation(op string, action domain.AuditAction, shopID string, err error) {
	metrics.ShopMutationsTotal.WithLabelValues(op, domain.OutcomeOf(err)).Inc()
	v.audit.Record(domain.AuditEvent{
		Action:    action,
		SessionID: v.sessionID,
		ShopID:    shopID,
		Outcome:   domain.OutcomeOf(err),
	})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidBalance):
		return msgInvalidBalance
	case errors.Is(err, domain.ErrInvalidBillingType):
		return msgInvalidBilling
	default:
		return msgMissingFields
	}
}

// editing must be called with mu held.
func (v *ShopListView) editing() bool {
	if v.form.ShopID == "" {
		return false
	}
	_, ok := v.find(v.form.ShopID)
	return ok
}

func (v *ShopListView) find(shopID string) (domain.Shop, bool) {
	for _, s := range v.shops {
		if s.ShopID == shopID {
			return s, true
		}
	}
	return domain.Shop{}, false
}

func (v *ShopListView) setError(msg string) {
	v.err = msg
	v.success = ""
}

func (v *ShopListView) setSuccess(msg string) {
	v.success = msg
	v.err = ""
}

func (v *ShopListView) withLock(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn()
}
