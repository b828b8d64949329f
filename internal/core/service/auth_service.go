package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	sessions ports.SessionManager
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionManager) *AuthService {
	return &AuthService{repo: repo, sessions: sessions}
}

// Register runs the registration workflow: validate, hash the password,
// build the role profile, and persist user+profile in one transaction.
// Nothing is written when any step fails.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.Role(in.Role),
		CreatedAt:    now,
	}

	profile, err := ProvisionProfile(user.Role, in, now)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateWithProfile(ctx, user, profile)
}

// Login verifies the credentials and establishes a remember-me session.
// Unknown email and wrong password both surface as ErrInvalidCredentials so
// responses never reveal whether an email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Establish(ctx, user, true)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func validateRegistration(in ports.RegisterInput) error {
	if in.Email == "" {
		return domain.Validation("email is required")
	}
	if in.Password == "" {
		return domain.Validation("password is required")
	}
	if in.Password != in.PasswordConfirm {
		return domain.Validation("passwords do not match")
	}
	if len(in.Password) < minPasswordLength {
		return domain.Validation("password must be at least 8 characters")
	}
	role := domain.Role(in.Role)
	if !role.Provisionable() {
		return domain.Validation("role must be PUBLISHER or ADVERTISER")
	}
	return nil
}
