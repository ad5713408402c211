package token

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Name:  "Alice",
		Email: "alice@example.com",
	}
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", "taskdeck-test", time.Hour)
	user := testUser()

	tok, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	identity, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.ID != user.ID || identity.Name != user.Name || identity.Email != user.Email {
		t.Fatalf("claims mismatch: got %+v", identity)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", "taskdeck-test", time.Hour)
	expired := &Manager{secret: m.secret, issuer: m.issuer, ttl: -time.Second}

	tok, err := expired.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m.Verify(tok); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", "i", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewManager("wrong-secret", "i", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("k", "i", time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := m.Verify(raw); err != domain.ErrInvalidToken {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestVerify_MissingClaims(t *testing.T) {
	t.Parallel()

	m := NewManager("k", "i", time.Hour)
	tok, err := m.Issue(&domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := m.Verify(tok); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing name/email claims, got %v", err)
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	t.Parallel()

	m := NewManager("k", "i", 0)
	if m.ttl != 7*24*time.Hour {
		t.Fatalf("default ttl: got %v", m.ttl)
	}
}
