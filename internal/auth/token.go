package auth

import (
	"errors"
	"fmt"
	"time"

	"teslo-shop/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTokenLifetime is used when no lifetime is configured
const DefaultTokenLifetime = 2 * time.Hour

// Payload is the identity carried by a token
type Payload struct {
	AccountID uuid.UUID
	Role      domain.Role
	ExpiresAt time.Time
}

// Claims represents the JWT claims
type Claims struct {
	AccountID uuid.UUID   `json:"id"`
	Role      domain.Role `json:"rol"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens
type TokenService interface {
	Issue(accountID uuid.UUID, role domain.Role) (string, error)
	Validate(tokenString string) (*Payload, error)
}

type hmacTokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
	logger     *zap.Logger
}

// NewTokenService creates an HS256 token service. The signing key is fixed for the life of the service.
func NewTokenService(secret string, lifetime time.Duration, logger *zap.Logger) (TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &hmacTokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
		logger:     logger,
	}, nil
}

// Issue signs a token for the account that expires after the configured lifetime
func (s *hmacTokenService) Issue(accountID uuid.UUID, role domain.Role) (string, error) {
	now := s.timeFunc()
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate verifies signature and expiry. Every failure is reported as domain.ErrTokenInvalid.
func (s *hmacTokenService) Validate(tokenString string) (*Payload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		s.logger.Debug("Token validation failed", zap.Error(err))
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == uuid.Nil {
		return nil, domain.ErrTokenInvalid
	}

	return &Payload{
		AccountID: claims.AccountID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
