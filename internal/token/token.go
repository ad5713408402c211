// Package token issues and verifies the signed bearer tokens that carry
// the whole session: no server-side session record exists, so validity
// is fully determined by the signature and expiry at verification time.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskdeck/taskdeck/domain"
)

// Identity is the set of claims embedded in every token. It is trusted
// as of issuance time; profile changes surface only after re-login.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager builds a Manager. A non-positive ttl falls back to 7 days.
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue mints a token embedding the user's identity claims.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
	return tok.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// Malformed tokens, bad signatures, and missing claims all yield the
// same unauthorized error.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrInvalidToken
	}
	if parsed.UserID == "" || parsed.Name == "" || parsed.Email == "" {
		return nil, domain.ErrInvalidToken
	}
	return &Identity{
		ID:    parsed.UserID,
		Name:  parsed.Name,
		Email: parsed.Email,
	}, nil
}
