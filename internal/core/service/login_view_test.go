package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingo/shop-console/internal/core/domain"
)

func newTestLogin(api *stubAPI, tokens *stubTokens, audit *recordingAudit) (*LoginView, *Controller) {
	c := NewController(context.Background(), tokens, zerolog.Nop())
	return NewLoginView(api, c.OnLogin, audit, "sid-1", zerolog.Nop()), c
}

func TestLoginView_Success(t *testing.T) {
	api := &stubAPI{loginFn: func(_ context.Context, u, p string) (string, error) {
		if u != "admin" || p != "pw" {
			t.Fatalf("unexpected credentials %q %q", u, p)
		}
		return "tok", nil
	}}
	tokens := &stubTokens{}
	audit := &recordingAudit{}
	v, c := newTestLogin(api, tokens, audit)

	route, err := v.Submit(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, RouteDashboard, route)
	assert.True(t, c.Authenticated())
	assert.Equal(t, "tok", tokens.token)
	assert.Empty(t, v.Snapshot().Error)

	events := audit.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditLogin, events[0].Action)
	assert.Equal(t, domain.OutcomeSuccess, events[0].Outcome)
	assert.Equal(t, "admin", events[0].Username)
}

func TestLoginView_Failure(t *testing.T) {
	api := &stubAPI{loginFn: func(context.Context, string, string) (string, error) {
		return "", errBoom
	}}
	tokens := &stubTokens{}
	v, c := newTestLogin(api, tokens, &recordingAudit{})

	route, err := v.Submit(context.Background(), "admin", "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, route)
	assert.False(t, c.Authenticated())
	assert.Empty(t, tokens.token)

	state := v.Snapshot()
	assert.Equal(t, "Invalid credentials. Try again.", state.Error)
	assert.Equal(t, "admin", state.Username)
}

func TestLoginView_EmptyTokenIsFailure(t *testing.T) {
	api := &stubAPI{loginFn: func(context.Context, string, string) (string, error) {
		return "", nil
	}}
	v, c := newTestLogin(api, &stubTokens{}, &recordingAudit{})

	_, err := v.Submit(context.Background(), "admin", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, c.Authenticated())
}

func TestLoginView_EmptyFieldsSkipNetwork(t *testing.T) {
	api := &stubAPI{}
	v, _ := newTestLogin(api, &stubTokens{}, &recordingAudit{})

	_, err := v.Submit(context.Background(), "admin", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, api.Calls())
}

func TestLoginView_Reset(t *testing.T) {
	api := &stubAPI{loginFn: func(context.Context, string, string) (string, error) { return "", errBoom }}
	v, _ := newTestLogin(api, &stubTokens{}, &recordingAudit{})
	_, _ = v.Submit(context.Background(), "x", "y")

	v.Reset()
	assert.Equal(t, LoginState{}, v.Snapshot())
}
