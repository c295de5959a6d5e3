package transport

import (
	"net/http"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/middleware"
	"teslo-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50,password"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// AuthHandler handles HTTP requests for account operations
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes. loginLimiter wraps the login endpoint only.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware, loginLimiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(loginLimiter).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(middleware.RequireOperation(auth.OpCheckStatus, h.logger)).Get("/check-status", h.CheckStatus)
			r.With(middleware.RequireOperation(auth.OpPrivate, h.logger)).Get("/private", h.Private)
			r.With(middleware.RequireOperation(auth.OpPrivateRoles, h.logger)).Get("/private2", h.Private)
			r.With(middleware.RequireOperation(auth.OpPrivateRoles, h.logger)).Get("/private3", h.Private)
		})
	})
}

// Register handles account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("User registered successfully", zap.String("user_id", result.User.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, result)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("User logged in successfully", zap.String("user_id", result.User.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// CheckStatus issues a fresh token for the current principal
func (h *AuthHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	result, err := h.authService.CheckStatus(r.Context(), principal)
	if err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Private echoes the authenticated principal
func (h *AuthHandler) Private(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, principal.Public())
}
