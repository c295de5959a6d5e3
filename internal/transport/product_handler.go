package transport

import (
	"net/http"
	"strconv"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/middleware"
	"teslo-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest is a partial product payload. Absent fields keep their value.
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

func (req CreateProductRequest) toInput() service.CreateProductInput {
	return service.CreateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       req.Sizes,
		Gender:      req.Gender,
		Tags:        req.Tags,
		Images:      req.Images,
	}
}

func (req UpdateProductRequest) toInput() service.UpdateProductInput {
	return service.UpdateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Slug:        req.Slug,
		Stock:       req.Stock,
		Sizes:       present(req.Sizes),
		Gender:      req.Gender,
		Tags:        present(req.Tags),
		Images:      present(req.Images),
	}
}

// present distinguishes an absent JSON array (nil) from an explicit one
func present(s []string) *[]string {
	if s == nil {
		return nil
	}
	return &s
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{term}", h.FindOne)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(middleware.RequireOperation(auth.OpCreateResource, h.logger)).Post("/", h.Create)
			r.With(middleware.RequireOperation(auth.OpUpdateResource, h.logger)).Patch("/{id}", h.Update)
			r.With(middleware.RequireOperation(auth.OpDeleteResource, h.logger)).Delete("/{id}", h.Remove)
		})
	})
}

// Create handles product creation on behalf of the principal
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFrom(r.Context())

	product, err := h.productService.Create(r.Context(), req.toInput(), principal)
	if err != nil {
		h.logger.Debug("Product creation failed", zap.Error(err))
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("user_id", principal.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List returns a page of products. limit must be positive and offset non-negative.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultPageLimit, 1)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0, 0)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.productService.List(r.Context(), limit, offset)
	if err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// FindOne looks a product up by id, title or slug
func (h *ProductHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	product, err := h.productService.FindOnePlain(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update applies a partial update. The principal becomes the owner.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFrom(r.Context())

	product, err := h.productService.Update(r.Context(), id, req.toInput(), principal)
	if err != nil {
		h.logger.Debug("Product update failed", zap.Error(err), zap.String("product_id", id.String()))
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id.String()), zap.String("user_id", principal.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Remove deletes a product and its images
func (h *ProductHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Remove(r.Context(), id); err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("Product removed", zap.String("product_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Validation failed (uuid is expected)")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def, min int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, &queryError{name: name, min: min}
	}
	return v, nil
}

type queryError struct {
	name string
	min  int
}

func (e *queryError) Error() string {
	return e.name + " must be an integer greater than or equal to " + strconv.Itoa(e.min)
}
