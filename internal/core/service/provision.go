package service

import (
	"strings"
	"time"

	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/ports"
)

// ProvisionProfile builds the profile record matching the role. Blank
// display/company names default to the local part of the email. The caller
// persists the result in the same transaction as the user row. Returns
// ErrUnsupportedRole for roles that do not take a profile.
func ProvisionProfile(role domain.Role, in ports.RegisterInput, now time.Time) (domain.Profile, error) {
	switch role {
	case domain.RolePublisher:
		name := strings.TrimSpace(in.DisplayName)
		if name == "" {
			name = emailLocalPart(in.Email)
		}
		return &domain.PublisherProfile{
			DisplayName: name,
			Domain:      strings.TrimSpace(in.Domain),
			CreatedAt:   now,
		}, nil
	case domain.RoleAdvertiser:
		name := strings.TrimSpace(in.CompanyName)
		if name == "" {
			name = emailLocalPart(in.Email)
		}
		return &domain.AdvertiserProfile{
			CompanyName: name,
			CreatedAt:   now,
		}, nil
	default:
		return nil, domain.ErrUnsupportedRole
	}
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
