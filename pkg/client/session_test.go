package client

import (
	"testing"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/pkg/localstore"
)

// fakeAPI stands in for the HTTP client.
type fakeAPI struct {
	token   string
	user    *domain.User
	issued  string
	meErr   error
	authErr error
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

func (f *fakeAPI) Register(name, email, password string) (*domain.User, string, error) {
	if f.authErr != nil {
		return nil, "", f.authErr
	}
	f.user = &domain.User{ID: "u1", Name: name, Email: domain.NormalizeEmail(email)}
	return f.user, f.issued, nil
}

func (f *fakeAPI) Login(email, password string) (*domain.User, string, error) {
	if f.authErr != nil {
		return nil, "", f.authErr
	}
	f.user = &domain.User{ID: "u1", Email: domain.NormalizeEmail(email)}
	return f.user, f.issued, nil
}

func (f *fakeAPI) Me() (*Identity, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &Identity{ID: "u1"}, nil
}

func TestSession_LoginPersistsState(t *testing.T) {
	t.Parallel()

	store := localstore.NewMemory()
	api := &fakeAPI{issued: "tok-abc"}
	session := NewSession(api, store)

	if session.Authenticated() {
		t.Fatalf("fresh session should not be authenticated")
	}

	if err := session.Login("Alice@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !session.Authenticated() {
		t.Fatalf("session should be authenticated after login")
	}
	if api.token != "tok-abc" {
		t.Fatalf("token not attached to client: %q", api.token)
	}

	stored, ok, _ := store.Get("auth/token")
	if !ok || string(stored) != "tok-abc" {
		t.Fatalf("token not persisted: %q ok=%v", stored, ok)
	}
	if _, ok, _ := store.Get("auth/user"); !ok {
		t.Fatalf("user not persisted")
	}
}

func TestSession_RestoreRevalidates(t *testing.T) {
	t.Parallel()

	store := localstore.NewMemory()
	api := &fakeAPI{issued: "tok-abc"}

	first := NewSession(api, store)
	if err := first.Login("alice@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := first.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme error: %v", err)
	}

	api2 := &fakeAPI{}
	second := NewSession(api2, store)
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if !second.Authenticated() {
		t.Fatalf("restored session should be authenticated")
	}
	if api2.token != "tok-abc" {
		t.Fatalf("restored token not attached: %q", api2.token)
	}
	if second.User() == nil || second.User().Email != "alice@x.com" {
		t.Fatalf("cached user not restored: %+v", second.User())
	}
	if second.Theme() != "dark" {
		t.Fatalf("theme not restored: %q", second.Theme())
	}
}

func TestSession_RestoreClearsRejectedToken(t *testing.T) {
	t.Parallel()

	store := localstore.NewMemory()
	store.Put("auth/token", []byte("stale"))

	api := &fakeAPI{meErr: domain.ErrInvalidToken}
	session := NewSession(api, store)

	if err := session.Restore(); err != nil {
		t.Fatalf("Restore should swallow an expired session, got %v", err)
	}
	if session.Authenticated() {
		t.Fatalf("rejected token should clear the session")
	}
	if _, ok, _ := store.Get("auth/token"); ok {
		t.Fatalf("stale token still persisted")
	}
}

func TestSession_LogoutKeepsTheme(t *testing.T) {
	t.Parallel()

	store := localstore.NewMemory()
	api := &fakeAPI{issued: "tok"}
	session := NewSession(api, store)

	if err := session.Login("a@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := session.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme error: %v", err)
	}
	if err := session.Logout(); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	if session.Authenticated() || session.User() != nil {
		t.Fatalf("session state survived logout")
	}
	if api.token != "" {
		t.Fatalf("client token survived logout")
	}
	if _, ok, _ := store.Get("auth/token"); ok {
		t.Fatalf("token survived logout")
	}
	if value, ok, _ := store.Get("ui/theme"); !ok || string(value) != "dark" {
		t.Fatalf("theme should survive logout, got %q ok=%v", value, ok)
	}
}

func TestSession_FailedLoginLeavesNoState(t *testing.T) {
	t.Parallel()

	store := localstore.NewMemory()
	api := &fakeAPI{authErr: domain.ErrInvalidCredentials}
	session := NewSession(api, store)

	if err := session.Login("a@x.com", "bad"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.Authenticated() {
		t.Fatalf("failed login should not authenticate")
	}
	if _, ok, _ := store.Get("auth/token"); ok {
		t.Fatalf("failed login persisted a token")
	}
}
