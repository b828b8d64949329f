package ports

import (
	"context"

	"github.com/admarket/portal/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts and
// their role profiles.
type UserRepository interface {
	// FindByEmail does a case-sensitive exact match on the unique email
	// column. Returns domain.ErrUserNotFound on miss.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID loads a user by primary key. Returns domain.ErrUserNotFound
	// on miss.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// CreateWithProfile inserts the user and its role profile in a single
	// transaction: either both rows persist or neither does. profile may be
	// nil only for ADMIN users. Returns domain.ErrDuplicateEmail when the
	// unique email constraint rejects the insert.
	CreateWithProfile(ctx context.Context, user *domain.User, profile domain.Profile) (*domain.User, error)
}
