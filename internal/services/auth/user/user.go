// Package user holds the auth service's user identity type.
package user

import (
	"strings"
	"time"
)

// User is one account known to the auth service.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
