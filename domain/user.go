package domain

import (
	"strings"
	"time"
)

// User represents a registered identity. The password hash never leaves
// the server; only the public fields are serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeEmail canonicalizes an email address for uniqueness checks:
// surrounding whitespace is stripped and the address is lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
