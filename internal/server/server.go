package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/config"
	"teslo-shop/internal/database"
	custommiddleware "teslo-shop/internal/middleware"
	"teslo-shop/internal/repository"
	"teslo-shop/internal/service"
	"teslo-shop/internal/storage"
	"teslo-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// HealthChecker reports the state of a backing service
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Services are the application services the router exposes
type Services struct {
	Auth     service.AuthService
	Products service.ProductService
	Seed     service.SeedService
	Images   storage.ImageStore
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers over db. redisClient may be nil.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client, images storage.ImageStore) (*Server, error) {
	userRepo := repository.NewUserRepository(db.DB())
	productRepo := repository.NewProductRepository(db.DB(), logger)

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Lifetime(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	hasher := auth.NewBcryptHasher()

	productService := service.NewProductService(productRepo)
	services := Services{
		Auth:     service.NewAuthService(userRepo, hasher, tokens),
		Products: productService,
		Seed:     service.NewSeedService(productService, userRepo, hasher, logger),
		Images:   images,
	}

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      NewRouter(cfg, logger, services, db, redisClient),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: requestTimeout + 5*time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}, nil
}

// NewRouter builds the HTTP routes. The seed endpoint is only mounted outside production.
func NewRouter(cfg *config.Config, logger *zap.Logger, services Services, health HealthChecker, redisClient *redis.Client) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack(requestTimeout)...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsProduction()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{"status": "ok"}
		code := http.StatusOK
		if health != nil {
			db := health.Health(r.Context())
			status["database"] = db
			if db["status"] != "up" {
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		custommiddleware.RespondWithJSON(w, code, status)
	})

	authMiddleware := custommiddleware.AuthMiddleware(services.Auth, logger)
	loginLimiter := newLoginLimiter(cfg.RateLimit, redisClient, logger)

	transport.NewAuthHandler(services.Auth, logger).RegisterRoutes(router, authMiddleware, loginLimiter)
	transport.NewProductHandler(services.Products, logger).RegisterRoutes(router, authMiddleware)
	transport.NewFilesHandler(services.Images, cfg.Server.HostAPI, cfg.Storage.MaxUploadBytes, logger).RegisterRoutes(router, authMiddleware)

	if !cfg.IsProduction() {
		transport.NewSeedHandler(services.Seed, logger).RegisterRoutes(router)
	}

	return router
}

func newLoginLimiter(cfg config.RateLimitConfig, redisClient *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	limit := custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.LoginRequests,
		Window:            cfg.WindowDuration(),
		KeyPrefix:         "rate_limit:login",
	}
	if redisClient != nil {
		return custommiddleware.RateLimitMiddleware(redisClient, limit, logger)
	}
	return custommiddleware.InMemoryRateLimitMiddleware(limit, logger)
}

// Run serves until ctx is cancelled, then drains in-flight requests and releases resources
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
	}
	s.Close()

	s.logger.Info("Graceful shutdown complete")
	return err
}

// Close releases the redis and database connections
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
