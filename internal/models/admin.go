package models

import (
	"time"
)

// AdminUser represents an account allowed into the admin dashboard
type AdminUser struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is a server-side admin session referenced by a cookie token
type Session struct {
	Token     string    `json:"-" db:"token"`
	AdminID   string    `json:"admin_id" db:"admin_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its TTL
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SiteSetting is an admin-editable key/value pair (site copy, social links)
type SiteSetting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
