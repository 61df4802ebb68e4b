package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/metrics"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

// WorkspaceDeps are the collaborators of a single workspace.
type WorkspaceDeps struct {
	SessionID      string
	Tokens         ports.TokenStore
	API            ports.ShopAPI
	Audit          ports.AuditRecorder
	CurrencyPrefix string
	Log            zerolog.Logger
}

// Workspace is the complete view state of one console session: the root
// controller and the views it mounts.
type Workspace struct {
	ID          string
	Controller  *Controller
	Login       *LoginView
	Shops       *ShopListView
	Commissions *CommissionView

	audit    ports.AuditRecorder
	lastSeen time.Time
}

// NewWorkspace wires the views of a session together and seeds its controller
// from the token store.
func NewWorkspace(ctx context.Context, deps WorkspaceDeps) *Workspace {
	audit := deps.Audit
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	log := deps.Log.With().Str("session_id", deps.SessionID).Logger()

	controller := NewController(ctx, deps.Tokens, log)
	commissions := NewCommissionView(deps.API, audit, deps.SessionID, deps.CurrencyPrefix, log)

	return &Workspace{
		ID:          deps.SessionID,
		Controller:  controller,
		Login:       NewLoginView(deps.API, controller.OnLogin, audit, deps.SessionID, log),
		Shops:       NewShopListView(deps.API, commissions, audit, deps.SessionID, log),
		Commissions: commissions,
		audit:       audit,
		lastSeen:    time.Now(),
	}
}

// Logout clears the session and unmounts every view.
func (w *Workspace) Logout(ctx context.Context) error {
	err := w.Controller.OnLogout(ctx)
	w.audit.Record(domain.AuditEvent{
		Action:    domain.AuditLogout,
		SessionID: w.ID,
		Outcome:   domain.OutcomeOf(err),
	})
	w.Login.Reset()
	w.Shops.Reset()
	return err
}

// WorkspaceFactory builds the workspace of a new session.
type WorkspaceFactory func(ctx context.Context, sessionID string) *Workspace

// Workspaces holds the live workspaces keyed by session id.
type Workspaces struct {
	mu      sync.Mutex
	items   map[string]*Workspace
	factory WorkspaceFactory
	idleTTL time.Duration
	now     func() time.Time
	log     zerolog.Logger
	release func(sessionID string)
}

func NewWorkspaces(factory WorkspaceFactory, idleTTL time.Duration, log zerolog.Logger) *Workspaces {
	return &Workspaces{
		items:   make(map[string]*Workspace),
		factory: factory,
		idleTTL: idleTTL,
		now:     time.Now,
		log:     log,
	}
}

// Get returns the workspace of sessionID, creating it on first use.
func (ws *Workspaces) Get(ctx context.Context, sessionID string) *Workspace {
	ws.mu.Lock()
	if w, ok := ws.items[sessionID]; ok {
		w.lastSeen = ws.now()
		ws.mu.Unlock()
		return w
	}
	ws.mu.Unlock()

	// Seeding reads the token store, so build outside the lock and let the
	// first writer win.
	created := ws.factory(ctx, sessionID)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w, ok := ws.items[sessionID]; ok {
		w.lastSeen = ws.now()
		return w
	}
	created.lastSeen = ws.now()
	ws.items[sessionID] = created
	metrics.ActiveWorkspaces.Set(float64(len(ws.items)))
	ws.log.Debug().Str("session_id", sessionID).Msg("workspace created")
	return created
}

// OnRelease registers fn to run after a workspace is dropped or evicted.
// It must be set before the workspaces are used.
func (ws *Workspaces) OnRelease(fn func(sessionID string)) {
	ws.release = fn
}

// Drop forgets the workspace of sessionID.
func (ws *Workspaces) Drop(sessionID string) {
	ws.mu.Lock()
	delete(ws.items, sessionID)
	metrics.ActiveWorkspaces.Set(float64(len(ws.items)))
	ws.mu.Unlock()

	if ws.release != nil {
		ws.release(sessionID)
	}
}

func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}

// Evict drops every workspace idle for longer than the idle TTL and returns
// how many were removed.
func (ws *Workspaces) Evict() int {
	ws.mu.Lock()
	cutoff := ws.now().Add(-ws.idleTTL)
	var evicted []string
	for id, w := range ws.items {
		if w.lastSeen.Before(cutoff) {
			delete(ws.items, id)
			evicted = append(evicted, id)
		}
	}
	metrics.ActiveWorkspaces.Set(float64(len(ws.items)))
	ws.mu.Unlock()

	if ws.release != nil {
		for _, id := range evicted {
			ws.release(id)
		}
	}
	return len(evicted)
}

// Start runs the idle janitor until ctx is cancelled.
func (ws *Workspaces) Start(ctx context.Context) {
	if ws.idleTTL <= 0 {
		return
	}
	interval := ws.idleTTL / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := ws.Evict(); n > 0 {
					ws.log.Info().Int("evicted", n).Msg("idle workspaces evicted")
				}
			}
		}
	}()
}
