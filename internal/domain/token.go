package domain

import "time"

// AuthToken is an opaque bearer token issued on login.
type AuthToken struct {
	Token          string
	EmployeeNumber int
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Expired reports whether the token is no longer usable at now.
func (t *AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
