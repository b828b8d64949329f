package ports

import (
	"context"
	"time"

	"github.com/admarket/portal/internal/core/domain"
)

// SessionStore persists session state keyed by session id.
type SessionStore interface {
	Put(ctx context.Context, sid string, userID int64, ttl time.Duration) error
	// Get returns the user id bound to sid, or domain.ErrSessionNotFound.
	Get(ctx context.Context, sid string) (int64, error)
	// Delete removes the session. Deleting an unknown sid is not an error.
	Delete(ctx context.Context, sid string) error
}

// SessionManager binds sessions to users and resolves inbound tokens back to
// them. Establish and Terminate are the only mutators of session state.
type SessionManager interface {
	// Establish creates a session for the user and returns the opaque token
	// handed to the client. persistent selects the long-lived TTL
	// (remember-me).
	Establish(ctx context.Context, user *domain.User, persistent bool) (string, error)

	// Resolve returns the user bound to the token, or (nil, nil) when the
	// token is absent, malformed, expired, terminated, or refers to a
	// deleted user. Errors are reserved for infrastructure failures.
	Resolve(ctx context.Context, token string) (*domain.User, error)

	// Terminate invalidates the session. Idempotent: unknown or malformed
	// tokens are a no-op.
	Terminate(ctx context.Context, token string) error
}
