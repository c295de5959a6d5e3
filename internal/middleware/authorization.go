package middleware

import (
	"net/http"

	"teslo-shop/internal/auth"

	"go.uber.org/zap"
)

// RequireOperation enforces the policy entry for op. It must run after
// AuthMiddleware for operations that need a principal.
func RequireOperation(op auth.Operation, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFrom(r.Context())

			if err := auth.Check(op, principal); err != nil {
				fields := []zap.Field{zap.String("operation", string(op)), zap.Error(err)}
				if principal != nil {
					fields = append(fields, zap.String("user_id", principal.ID.String()), zap.String("role", principal.Role.String()))
				}
				logger.Warn("Operation not authorized", fields...)

				RespondWithAppError(w, logger, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
