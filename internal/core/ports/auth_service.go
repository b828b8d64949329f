package ports

import (
	"context"

	"github.com/admarket/portal/internal/core/domain"
)

// RegisterInput carries the registration form fields. DisplayName and Domain
// apply to PUBLISHER registrations, CompanyName to ADVERTISER ones.
type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
	DisplayName     string
	Domain          string
	CompanyName     string
}

type AuthService interface {
	// Register validates the input, creates the user and its profile
	// atomically, and returns the stored user. The profile is never created
	// without the user, nor the user without the profile.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login verifies the credentials and establishes a session, returning
	// the session token. Unknown email and wrong password are
	// indistinguishable: both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
