package transport

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/middleware"
	"teslo-shop/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const uploadField = "file"

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	SecureURL string `json:"secureUrl"`
}

// FilesHandler handles product image uploads and downloads
type FilesHandler struct {
	store          storage.ImageStore
	hostAPI        string
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewFilesHandler creates a new FilesHandler. hostAPI prefixes the returned urls.
func NewFilesHandler(store storage.ImageStore, hostAPI string, maxUploadBytes int64, logger *zap.Logger) *FilesHandler {
	return &FilesHandler{
		store:          store,
		hostAPI:        strings.TrimRight(hostAPI, "/"),
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes registers all file routes
func (h *FilesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/files/product", func(r chi.Router) {
		r.Get("/{name}", h.Download)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(middleware.RequireOperation(auth.OpUploadFile, h.logger)).Post("/", h.Upload)
		})
	})
}

// Upload stores a multipart image and returns its public url
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Make sure that the file is an image")
		return
	}

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Make sure that the file is an image")
		return
	}
	defer file.Close()

	contentType, name, err := storage.DetectImage(file)
	if err != nil {
		h.logger.Debug("Rejected upload", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Make sure that the file is an image")
		return
	}

	if err := h.store.Save(r.Context(), name, contentType, file); err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}

	h.logger.Info("Image uploaded", zap.String("name", name), zap.String("content_type", contentType))
	middleware.RespondWithJSON(w, http.StatusCreated, UploadResponse{
		SecureURL: h.hostAPI + "/files/product/" + name,
	})
}

// Download streams a stored image
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	body, contentType, err := h.store.Open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		middleware.RespondWithAppError(w, h.logger, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("Failed to stream image", zap.Error(err))
	}
}
