package transport

import (
	"net/http"

	"teslo-shop/internal/middleware"
	"teslo-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SeedHandler resets the catalog to the demo data set
type SeedHandler struct {
	seedService service.SeedService
	logger      *zap.Logger
}

// NewSeedHandler creates a new SeedHandler
func NewSeedHandler(seedService service.SeedService, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
		logger:      logger,
	}
}

func (h *SeedHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/seed", h.Run)
}

// Run wipes products and users and loads the demo data
func (h *SeedHandler) Run(w http.ResponseWriter, r *http.Request) {
	if err := h.seedService.Run(r.Context()); err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "SEED EXECUTED"})
}
