package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/metrics"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

const msgInvalidCredentials = "Invalid credentials. Try again."

// LoginState is the rendered state of the login page. The password is never
// part of it.
type LoginState struct {
	Username string `json:"username"`
	Error    string `json:"error,omitempty"`
}

// LoginView exchanges credentials for a token and hands it to onAuthenticated.
type LoginView struct {
	mu              sync.Mutex
	username        string
	err             string
	auth            ports.AuthGateway
	onAuthenticated func(ctx context.Context, token string) error
	audit           ports.AuditRecorder
	sessionID       string
	log             zerolog.Logger
}

func NewLoginView(
	auth ports.AuthGateway,
	onAuthenticated func(ctx context.Context, token string) error,
	audit ports.AuditRecorder,
	sessionID string,
	log zerolog.Logger,
) *LoginView {
	return &LoginView{
		auth:            auth,
		onAuthenticated: onAuthenticated,
		audit:           audit,
		sessionID:       sessionID,
		log:             log,
	}
}

// Submit logs in. On success it returns the route to navigate to; on any
// failure it sets the fixed error message and returns ErrInvalidCredentials.
func (v *LoginView) Submit(ctx context.Context, username, password string) (Route, error) {
	v.mu.Lock()
	v.username = username
	v.mu.Unlock()

	err := v.submit(ctx, username, password)

	v.audit.Record(domain.AuditEvent{
		Action:    domain.AuditLogin,
		SessionID: v.sessionID,
		Username:  username,
		Outcome:   domain.OutcomeOf(err),
	})
	metrics.LoginsTotal.WithLabelValues(domain.OutcomeOf(err)).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.log.Warn().Err(err).Str("username", username).Msg("login failed")
		v.err = msgInvalidCredentials
		return "", domain.ErrInvalidCredentials
	}
	v.err = ""
	v.log.Info().Str("username", username).Msg("login succeeded")
	return RouteDashboard, nil
}

func (v *LoginView) submit(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	token, err := v.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return v.onAuthenticated(ctx, token)
}

func (v *LoginView) Snapshot() LoginState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return LoginState{Username: v.username, Error: v.err}
}

// Reset clears the page, e.g. after logout.
func (v *LoginView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.username = ""
	v.err = ""
}
