package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// TokenTTL is the fixed lifetime of an access token.
const TokenTTL = 24 * time.Hour

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string) (PublicUser, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	// Authorize resolves the token to a live user and reports its admin flag.
	Authorize(ctx context.Context, token string) (bool, error)
	// RequireAdmin is Authorize plus ErrForbidden for non-admins.
	RequireAdmin(ctx context.Context, token string) error
	// EnsureAdmin creates an admin account out-of-band. An existing email is not an error.
	EnsureAdmin(ctx context.Context, email, password, name string) (PublicUser, error)
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenService
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenService) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password, name string) (PublicUser, error) {
	return s.create(ctx, email, password, name, false)
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password, name string) (PublicUser, error) {
	u, err := s.create(ctx, email, password, name, true)
	if errors.Is(err, ErrUserAlreadyExists) {
		existing, lookupErr := s.repo.GetByEmail(ctx, normalizeEmail(email))
		if lookupErr != nil {
			return PublicUser{}, lookupErr
		}
		return existing.Public(), nil
	}
	return u, err
}

func (s *authService) create(ctx context.Context, email, password, name string, isAdmin bool) (PublicUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return PublicUser{}, ErrInvalidCredentials
	}
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.Create(ctx, User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return PublicUser{}, ErrUserAlreadyExists
		}
		return PublicUser{}, fmt.Errorf("create user: %w", err)
	}
	return user.Public(), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return LoginResult{}, fmt.Errorf("lookup user: %w", err)
		}
		// Burn a comparison so a miss costs the same as a wrong password.
		s.hasher.Verify(password, s.hasher.Dummy())
		return LoginResult{}, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, TokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Email: user.Email, Token: token, IsAdmin: user.IsAdmin}, nil
}

func (s *authService) Authorize(ctx context.Context, token string) (bool, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		log.WithContext(ctx).Debugw("token rejected", "reason", err.Error())
		return false, ErrUnauthorized
	}
	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithContext(ctx).Debugw("token subject no longer exists", "subject", subject)
			return false, ErrUnauthorized
		}
		return false, fmt.Errorf("lookup subject: %w", err)
	}
	return user.IsAdmin, nil
}

func (s *authService) RequireAdmin(ctx context.Context, token string) error {
	isAdmin, err := s.Authorize(ctx, token)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrForbidden
	}
	return nil
}
