package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/internal/token"
	"github.com/taskdeck/taskdeck/repository"
)

type UseCase struct {
	users  repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and issues a fresh token. The email is
// normalized before the uniqueness check, and only a one-way hash of
// the password is stored.
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "name, email and password are required")
	}

	normalized := domain.NormalizeEmail(email)

	if _, err := uc.users.GetByEmail(ctx, normalized); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
	})
	if err != nil {
		// The unique index may still fire on a concurrent register.
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return nil, "", err
		}
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "user creation failed", err)
	}

	tok, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, tok, nil
}

// Login verifies credentials and issues a fresh token. An unknown email
// and a wrong password return the identical error so account existence
// is never revealed.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "email and password are required")
	}

	normalized := domain.NormalizeEmail(email)

	user, err := uc.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "user lookup failed", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token issuance failed", err)
	}

	return user, tok, nil
}
