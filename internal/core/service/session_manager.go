package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

const (
	// DefaultSessionTTL bounds sessions that should not outlive the browser.
	DefaultSessionTTL = 12 * time.Hour
	// RememberTTL is the remember-me session lifetime.
	RememberTTL = 30 * 24 * time.Hour

	sessionIDBytes = 16
)

// SessionManager issues and resolves session tokens. Session state lives in
// the SessionStore keyed by a random session id; the token handed to the
// client is that id wrapped in an HS256-signed JWT, so a tampered cookie
// fails signature verification before any store lookup.
type SessionManager struct {
	store       ports.SessionStore
	users       ports.UserRepository
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewSessionManager(store ports.SessionStore, users ports.UserRepository, secret string) *SessionManager {
	return &SessionManager{
		store:       store,
		users:       users,
		secret:      []byte(secret),
		ttl:         DefaultSessionTTL,
		rememberTTL: RememberTTL,
	}
}

// Establish binds a new session to the user and returns the signed token.
func (m *SessionManager) Establish(ctx context.Context, user *domain.User, persistent bool) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}

	ttl := m.ttl
	if persistent {
		ttl = m.rememberTTL
	}

	if err := m.store.Put(ctx, sid, user.ID, ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Resolve maps a token back to its user. Absent, malformed, expired, or
// terminated tokens resolve to (nil, nil), as does a session whose user no
// longer exists. Errors are infrastructure failures only.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.User, error) {
	sid, ok := m.parseSessionID(token)
	if !ok {
		return nil, nil
	}

	userID, err := m.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Terminate invalidates the session behind the token. Idempotent: malformed
// tokens and already-terminated sessions are a no-op.
func (m *SessionManager) Terminate(ctx context.Context, token string) error {
	sid, ok := m.parseSessionID(token)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

func (m *SessionManager) parseSessionID(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", false
	}
	return sid, true
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
