package domain

import "errors"

var ErrEmptyToken = errors.New("empty session token")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")

// Session holds the bearer token issued by the shop API at login. The
// authenticated flag is a projection of the token, never stored separately.
type Session struct {
	token string
}

// NewSession restores a session from a persisted token; an empty token
// yields an unauthenticated session.
func NewSession(token string) Session {
	return Session{token: token}
}

func (s Session) Authenticated() bool { return s.token != "" }

func (s Session) Token() string { return s.token }

// Authenticate transitions the session to authenticated with token.
func (s *Session) Authenticate(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.token = token
	return nil
}

// Clear transitions the session to unauthenticated.
func (s *Session) Clear() {
	s.token = ""
}
