package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"teslo-shop/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticator resolves a bearer token to the calling user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved user in the request context
func AuthMiddleware(authenticator Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				logger.Debug("Rejected request without usable token", zap.Error(err))
				RespondWithAppError(w, logger, err)
				return
			}

			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithAppError(w, logger, err)
				return
			}

			logger.Debug("User authenticated",
				zap.String("user_id", user.ID.String()),
				zap.String("role", user.Role.String()),
			)

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", domain.ErrUnauthenticated)
	}
	return strings.TrimSpace(token), nil
}

// WithPrincipal returns a copy of ctx carrying user
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFrom extracts the authenticated user from ctx
func PrincipalFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(principalKey).(*domain.User)
	return user, ok && user != nil
}
