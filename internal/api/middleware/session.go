package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/core/service"
)

const (
	ctxKeySessionID = "session_id"
	ctxKeyWorkspace = "workspace"
)

var ErrInvalidSessionCookie = errors.New("invalid session cookie")

// SessionClaims is the payload of the console session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionSigner issues and verifies HS256 session cookies.
type SessionSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSessionSigner(key []byte, ttl time.Duration) *SessionSigner {
	return &SessionSigner{key: key, ttl: ttl, now: time.Now}
}

func (s *SessionSigner) TTL() time.Duration { return s.ttl }

// Sign returns a cookie value carrying sessionID.
func (s *SessionSigner) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Verify returns the session id of a cookie value.
func (s *SessionSigner) Verify(value string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.SessionID == "" {
		return "", ErrInvalidSessionCookie
	}
	return claims.SessionID, nil
}

// WorkspaceSource resolves the workspace of a session id.
type WorkspaceSource interface {
	Get(ctx context.Context, sessionID string) *service.Workspace
}

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	CookieName string
	Secure     bool
	Signer     *SessionSigner
	Workspaces WorkspaceSource
	Log        zerolog.Logger
}

// Session attaches the browser session and its workspace to the request. A
// missing or invalid cookie starts a new session with a fresh cookie.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				if sid, err := cfg.Signer.Verify(cookie.Value); err == nil {
					sessionID = sid
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				value, err := cfg.Signer.Sign(sessionID)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    value,
					Path:     "/",
					MaxAge:   int(cfg.Signer.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				cfg.Log.Debug().Str("session_id", sessionID).Msg("session started")
			}

			c.Set(ctxKeySessionID, sessionID)
			c.Set(ctxKeyWorkspace, cfg.Workspaces.Get(c.Request().Context(), sessionID))
			return next(c)
		}
	}
}

// ExpireSession removes the session cookie from the browser.
func ExpireSession(c echo.Context, cookieName string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WorkspaceFrom returns the workspace attached by Session.
func WorkspaceFrom(c echo.Context) (*service.Workspace, bool) {
	ws, ok := c.Get(ctxKeyWorkspace).(*service.Workspace)
	return ws, ok && ws != nil
}

// SessionIDFrom returns the session id attached by Session.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(ctxKeySessionID).(string)
	return sid
}

// WithWorkspace attaches ws to c. Tests and tools use it to bypass cookies.
func WithWorkspace(c echo.Context, sessionID string, ws *service.Workspace) {
	c.Set(ctxKeySessionID, sessionID)
	c.Set(ctxKeyWorkspace, ws)
}
