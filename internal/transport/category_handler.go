package transport

import (
	"errors"
	"net/http"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations.
// Categories can be listed, read and created; there is no update or delete.
type CategoryHandler struct {
	productService service.ProductService
	logger         *zap.Logger
	prefix         string
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(productService service.ProductService, logger *zap.Logger, prefix string) *CategoryHandler {
	return &CategoryHandler{
		productService: productService,
		logger:         logger,
		prefix:         prefix,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route(h.prefix, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Show)
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	streamJSONArray(w, h.productService.ListCategories(r.Context()), h.logger)
}

func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := h.productService.GetCategory(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get category", zap.Error(err), zap.String("category_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get category")
		return
	}
	if category == nil {
		middleware.RespondEmpty(w, http.StatusNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := middleware.DecodeJSON(r, &category); err != nil {
		h.logger.Debug("Create category decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category.ID = ""

	saved, err := h.productService.SaveCategory(r.Context(), &category)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			middleware.RespondWithValidationErrors(w, verr.Errors)
			return
		}

		h.logger.Error("Create category failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.String("category_id", saved.ID))
	w.Header().Set("Location", h.prefix+"/"+saved.ID)
	middleware.RespondWithJSON(w, http.StatusCreated, saved)
}
