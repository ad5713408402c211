package auth

import (
	"context"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/token"
)

// fakeUserRepo keeps users in a map keyed by normalized email.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	f.nextID++
	user.ID = string(rune('a' + f.nextID))
	user.CreatedAt = time.Now()
	stored := *user
	f.byEmail[user.Email] = &stored
	return user, nil
}

func newUseCase(t *testing.T) (*UseCase, *token.Manager) {
	t.Helper()
	tokens := token.NewManager("test-secret", "taskdeck-test", time.Hour)
	return New(newFakeUserRepo(), tokens, nil), tokens
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	uc, tokens := newUseCase(t)
	ctx := context.Background()

	registered, tok, err := uc.Register(ctx, "Alice", "Alice@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if registered.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", registered.Email)
	}
	if len(registered.PasswordHash) == 0 {
		t.Fatalf("password hash missing")
	}
	if string(registered.PasswordHash) == "s3cret-pass" {
		t.Fatalf("raw password stored")
	}

	identity, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("registration token invalid: %v", err)
	}
	if identity.ID != registered.ID || identity.Email != registered.Email || identity.Name != "Alice" {
		t.Fatalf("claims mismatch: %+v", identity)
	}

	loggedIn, tok2, err := uc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if loggedIn.ID != registered.ID {
		t.Fatalf("login returned a different user")
	}
	if identity2, err := tokens.Verify(tok2); err != nil || identity2.ID != registered.ID {
		t.Fatalf("login token invalid: %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	uc, _ := newUseCase(t)
	ctx := context.Background()

	cases := [][3]string{
		{"", "a@x.com", "password"},
		{"Alice", "", "password"},
		{"Alice", "a@x.com", ""},
	}
	for _, c := range cases {
		if _, _, err := uc.Register(ctx, c[0], c[1], c[2]); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("Register(%q,%q,%q): expected INVALID, got %v", c[0], c[1], c[2], err)
		}
	}
}

func TestRegister_DuplicateNormalizedEmail(t *testing.T) {
	t.Parallel()

	uc, _ := newUseCase(t)
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "Alice", "Foo@x.com", "password1"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	// Same address after normalization: different case plus whitespace.
	_, _, err := uc.Register(ctx, "Bob", " foo@x.com ", "password2")
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()

	uc, _ := newUseCase(t)
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "Alice", "alice@x.com", "right-password"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, wrongPass := uc.Login(ctx, "alice@x.com", "wrong-password")
	_, _, noAccount := uc.Login(ctx, "nobody@x.com", "whatever")

	if wrongPass == nil || noAccount == nil {
		t.Fatalf("expected both logins to fail")
	}
	// Account existence must not leak through differing errors.
	if wrongPass.Error() != noAccount.Error() {
		t.Fatalf("error payloads differ: %q vs %q", wrongPass, noAccount)
	}
	if wrongPass != domain.ErrInvalidCredentials || noAccount != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPass, noAccount)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	uc, _ := newUseCase(t)
	if _, _, err := uc.Login(context.Background(), "", ""); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}
}
