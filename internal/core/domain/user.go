package domain

import "time"

// Role is the closed set of account roles. A user holds exactly one role,
// assigned at registration and never changed.
type Role string

const (
	RolePublisher  Role = "PUBLISHER"
	RoleAdvertiser Role = "ADVERTISER"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePublisher, RoleAdvertiser, RoleAdmin:
		return true
	}
	return false
}

// Provisionable reports whether accounts with this role carry a profile.
// ADMIN accounts are created without one.
func (r Role) Provisionable() bool {
	return r == RolePublisher || r == RoleAdvertiser
}

// LandingPath returns the dashboard a freshly authenticated user of this
// role should be sent to. Unknown roles land on the index page.
func (r Role) LandingPath() string {
	switch r {
	case RolePublisher:
		return "/publisher/dashboard"
	case RoleAdvertiser:
		return "/advertiser/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
