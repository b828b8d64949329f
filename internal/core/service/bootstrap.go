package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

// EnsureAdmin seeds an ADMIN user at startup when both email and password
// are configured. Idempotent: an existing user with that email leaves the
// store untouched, and a concurrent seed losing the uniqueness race is
// treated the same way.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, email, password string, log zerolog.Logger) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		if existing.Role != domain.RoleAdmin {
			log.Warn().Str("email", email).Msg("admin bootstrap: email taken by non-admin user")
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := repo.CreateWithProfile(ctx, admin, nil); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	log.Info().Str("email", email).Msg("admin user created")
	return nil
}
