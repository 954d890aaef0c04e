package transport

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Multipart part names
const (
	filePart              = "file"
	nameField             = "nombre"
	priceField            = "precio"
	categoryIDField       = "categoria.id"
	categoryNameField     = "categoria.nombre"
	defaultMultipartLimit = 32 << 20
)

// CreateProductResponse is the body of a successful create. The product
// fields are repeated at the top level so clients can read either shape.
type CreateProductResponse struct {
	*domain.Product
	Producto  *domain.Product `json:"producto"`
	Mensaje   string          `json:"mensaje"`
	Timestamp time.Time       `json:"timestamp"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
	prefix         string
	maxMemory      int64
}

// NewProductHandler creates a new ProductHandler. prefix is the path the
// routes are mounted under and is used to build Location headers.
func NewProductHandler(productService service.ProductService, logger *zap.Logger, prefix string, maxMemory int64) *ProductHandler {
	if maxMemory <= 0 {
		maxMemory = defaultMultipartLimit
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger,
		prefix:         prefix,
		maxMemory:      maxMemory,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route(h.prefix, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/upload/{id}", h.UploadPhoto)
		r.Post("/create-with-photo", h.CreateWithPhoto)
		r.Get("/{id}", h.Show)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductHandler) location(id string) string {
	return h.prefix + "/" + id
}

// List streams every product as a JSON array
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	streamJSONArray(w, h.productService.ListProducts(r.Context()), h.logger)
}

// Show returns one product or 404
func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create validates and stores a new product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := middleware.DecodeJSON(r, &product); err != nil {
		h.logger.Debug("Create product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.productService.CreateProduct(r.Context(), &product)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.logger.Debug("Create product validation failed", zap.Error(err))
			middleware.RespondWithValidationErrors(w, verr.Errors)
			return
		}

		h.logger.Error("Create product failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", created.ID))
	w.Header().Set("Location", h.location(created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, CreateProductResponse{
		Product:   created,
		Producto:  created,
		Mensaje:   "Producto creado con éxito",
		Timestamp: time.Now(),
	})
}

// Update replaces the name, price and category of an existing product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req domain.Product
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("Update product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Category = req.Category

	saved, err := h.productService.SaveProduct(r.Context(), product)
	if err != nil {
		h.logger.Error("Update product failed", zap.Error(err), zap.String("product_id", product.ID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	w.Header().Set("Location", h.location(saved.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, saved)
}

// Delete removes an existing product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), product); err != nil {
		h.logger.Error("Delete product failed", zap.Error(err), zap.String("product_id", product.ID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", product.ID))
	middleware.RespondEmpty(w, http.StatusNoContent)
}

// UploadPhoto stores the "file" part and records it on the product
func (h *ProductHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.logger.Debug("Upload parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile(filePart)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	product, err := h.productService.UploadPhoto(r.Context(), chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		h.logger.Error("Upload photo failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to upload photo")
		return
	}
	if product == nil {
		middleware.RespondEmpty(w, http.StatusNotFound)
		return
	}

	w.Header().Set("Location", h.location(product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// CreateWithPhoto builds a product from form fields and stores it with its photo
func (h *ProductHandler) CreateWithPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.logger.Error("Create with photo parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "invalid multipart body")
		return
	}

	product, err := productFromForm(r.MultipartForm)
	if err != nil {
		h.logger.Error("Create with photo form invalid", zap.Error(err))
		middleware.RespondWithErrorDetails(w, http.StatusInternalServerError, "invalid multipart form",
			map[string]interface{}{"reason": err.Error()})
		return
	}

	file, header, err := r.FormFile(filePart)
	if err != nil {
		h.logger.Error("Create with photo missing file", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing file part")
		return
	}
	defer file.Close()

	created, err := h.productService.CreateWithPhoto(r.Context(), product, header.Filename, file)
	if err != nil {
		h.logger.Error("Create with photo failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	w.Header().Set("Location", h.location(created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

func productFromForm(form *multipart.Form) (*domain.Product, error) {
	value := func(key string) (string, error) {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return "", fmt.Errorf("missing form field %q", key)
		}
		return values[0], nil
	}

	name, err := value(nameField)
	if err != nil {
		return nil, err
	}
	rawPrice, err := value(priceField)
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", priceField, err)
	}
	categoryID, err := value(categoryIDField)
	if err != nil {
		return nil, err
	}
	categoryName, err := value(categoryNameField)
	if err != nil {
		return nil, err
	}

	return domain.NewProduct(name, price, &domain.Category{ID: categoryID, Name: categoryName}), nil
}

// lookup resolves the {id} path parameter, answering 404 or 500 itself when it returns false
func (h *ProductHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get product", zap.Error(err), zap.String("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return nil, false
	}
	if product == nil {
		middleware.RespondEmpty(w, http.StatusNotFound)
		return nil, false
	}
	return product, true
}
