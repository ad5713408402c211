package client

import (
	"encoding/json"
	"errors"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/pkg/localstore"
)

// Keys under which session state is persisted.
const (
	keyToken = "auth/token"
	keyUser  = "auth/user"
	keyTheme = "ui/theme"
)

// DefaultTheme is used until the user picks one.
const DefaultTheme = "light"

// api is the slice of Client the session controller needs; a test can
// substitute a fake.
type api interface {
	SetToken(token string)
	ClearToken()
	Register(name, email, password string) (*domain.User, string, error)
	Login(email, password string) (*domain.User, string, error)
	Me() (*Identity, error)
}

// Session is the explicit session context passed to anything that
// renders: current token, cached user and theme. It is the only holder
// of this state; nothing is ambient or global.
type Session struct {
	api   api
	store localstore.Store

	token string
	user  *domain.User
	theme string
}

func NewSession(api api, store localstore.Store) *Session {
	return &Session{
		api:   api,
		store: store,
		theme: DefaultTheme,
	}
}

// Restore loads persisted state and re-validates the token against the
// server. A rejected token clears the stored session instead of
// failing: an expired session is a normal start condition.
func (s *Session) Restore() error {
	if theme, ok, err := s.store.Get(keyTheme); err != nil {
		return err
	} else if ok {
		s.theme = string(theme)
	}

	tokenBytes, ok, err := s.store.Get(keyToken)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.token = string(tokenBytes)
	s.api.SetToken(s.token)

	if userBytes, ok, err := s.store.Get(keyUser); err != nil {
		return err
	} else if ok {
		var cached domain.User
		if json.Unmarshal(userBytes, &cached) == nil {
			s.user = &cached
		}
	}

	if _, err := s.api.Me(); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			return s.Logout()
		}
		return err
	}
	return nil
}

func (s *Session) Register(name, email, password string) error {
	user, token, err := s.api.Register(name, email, password)
	if err != nil {
		return err
	}
	return s.adopt(user, token)
}

func (s *Session) Login(email, password string) error {
	user, token, err := s.api.Login(email, password)
	if err != nil {
		return err
	}
	return s.adopt(user, token)
}

// Logout drops the session both in memory and on disk. The theme is a
// device preference and survives.
func (s *Session) Logout() error {
	s.token = ""
	s.user = nil
	s.api.ClearToken()
	if err := s.store.Delete(keyToken); err != nil {
		return err
	}
	return s.store.Delete(keyUser)
}

func (s *Session) Authenticated() bool {
	return s.token != ""
}

func (s *Session) User() *domain.User {
	return s.user
}

func (s *Session) Theme() string {
	return s.theme
}

func (s *Session) SetTheme(theme string) error {
	if theme == "" {
		return errors.New("theme cannot be empty")
	}
	s.theme = theme
	return s.store.Put(keyTheme, []byte(theme))
}

func (s *Session) adopt(user *domain.User, token string) error {
	s.user = user
	s.token = token
	s.api.SetToken(token)

	if err := s.store.Put(keyToken, []byte(token)); err != nil {
		return err
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Put(keyUser, encoded)
}
