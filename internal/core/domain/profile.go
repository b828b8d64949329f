package domain

import "time"

// Profile is the role-specific record created alongside a User. Exactly one
// profile exists per PUBLISHER or ADVERTISER user; it is written in the same
// transaction as the user row and removed with it (FK cascade).
type Profile interface {
	ProfileRole() Role
}

// PublisherProfile supplements a PUBLISHER user.
type PublisherProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Domain      string    `json:"domain,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (*PublisherProfile) ProfileRole() Role { return RolePublisher }

// AdvertiserProfile supplements an ADVERTISER user.
type AdvertiserProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (*AdvertiserProfile) ProfileRole() Role { return RoleAdvertiser }
