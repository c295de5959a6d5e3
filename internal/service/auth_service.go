package service

import (
	"context"
	"errors"
	"fmt"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/domain"
	"teslo-shop/internal/repository"
)

// AuthResult is returned by every successful authentication
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService defines registration, login and token checks
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CheckStatus(ctx context.Context, principal *domain.User) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens auth.TokenService
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens auth.TokenService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an active USER account and signs a token for it
func (s *authService) Register(ctx context.Context, fullName, email, password string) (*AuthResult, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hashed,
		IsActive:     true,
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies the credentials. An unknown email, a wrong password and an
// inactive account all fail with domain.ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// CheckStatus re-issues a token for an already authenticated user
func (s *authService) CheckStatus(ctx context.Context, principal *domain.User) (*AuthResult, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.issue(principal)
}

// Authenticate resolves a bearer token to an active user
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	payload, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, payload.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is not active", domain.ErrUnauthenticated)
	}

	return user.Public(), nil
}

func (s *authService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
