package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adoptease/internal/auth"
	"adoptease/internal/domain"
	"adoptease/internal/repository"
)

var (
	// ErrInvalidInput indicates a missing registration field.
	ErrInvalidInput = errors.New("all fields are required")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrUserNotFound is returned when logging in with an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when credentials do not match.
	ErrWrongPassword = errors.New("incorrect password")
	// ErrMissingAuth indicates an absent or non-Bearer Authorization header.
	ErrMissingAuth = errors.New("authorization header missing or invalid")
	// ErrUserGone indicates a valid token whose user has since been deleted.
	ErrUserGone = errors.New("user no longer exists")
	// ErrForbidden is returned when a non-admin requests an admin operation.
	ErrForbidden = errors.New("unauthorized access")
)

const bearerPrefix = "Bearer "

// AuthService orchestrates registration, login, and token verification.
// It holds no per-request state; the token itself is the only session.
type AuthService struct {
	users       repository.UserRepository
	tokens      *auth.TokenService
	isAdmin     func(email string) bool
	tokenTTL    time.Duration
	rememberTTL time.Duration
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, isAdmin func(string) bool, tokenTTL, rememberTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		isAdmin:     isAdmin,
		tokenTTL:    tokenTTL,
		rememberTTL: rememberTTL,
	}
}

// AdminEmailPolicy returns the default single-admin check: exact equality
// against the bootstrap admin email.
func AdminEmailPolicy(adminEmail string) func(string) bool {
	return func(email string) bool {
		return email == adminEmail
	}
}

// Register creates an account. No token is issued; the caller logs in separately.
func (s *AuthService) Register(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" || name == "" {
		return ErrInvalidInput
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a session token. rememberMe selects the
// long TTL (30 days by default) over the standard one (1 day).
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (token, name string, err error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", "", ErrWrongPassword
	}

	ttl := s.tokenTTL
	if rememberMe {
		ttl = s.rememberTTL
	}
	token, err = s.tokens.Issue(user.Email, user.Name, ttl)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return token, user.Name, nil
}

// VerifyToken checks the Authorization header and re-fetches the user so a
// deleted account cannot keep using a still-valid signed token.
func (s *AuthService) VerifyToken(ctx context.Context, authorization string) (email, name string, err error) {
	claimEmail, _, err := s.verifyBearer(authorization)
	if err != nil {
		return "", "", err
	}

	user, err := s.users.GetByEmail(ctx, claimEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserGone
		}
		return "", "", fmt.Errorf("lookup user: %w", err)
	}
	return user.Email, user.Name, nil
}

// ListUsers returns every account. Only the fixed admin identity may call it.
func (s *AuthService) ListUsers(ctx context.Context, authorization string) ([]domain.User, error) {
	claimEmail, _, err := s.verifyBearer(authorization)
	if err != nil {
		return nil, err
	}

	if !s.isAdmin(claimEmail) {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// EnsureAdmin seeds the bootstrap admin account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		// another instance may have seeded it first
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (s *AuthService) verifyBearer(authorization string) (email, name string, err error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", "", ErrMissingAuth
	}
	return s.tokens.Verify(strings.TrimPrefix(authorization, bearerPrefix))
}
