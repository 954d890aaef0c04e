package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"catalog-api/internal/blobstore"
	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the interface for catalog business logic.
// Lookups return a nil result and a nil error when nothing matches; errors
// are either *ValidationError or wrapped store failures.
type ProductService interface {
	ListProducts(ctx context.Context) iter.Seq2[*domain.Product, error]
	ListProductsUppercase(ctx context.Context) iter.Seq2[*domain.Product, error]
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, product *domain.Product) error
	UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*domain.Product, error)
	CreateWithPhoto(ctx context.Context, product *domain.Product, filename string, r io.Reader) (*domain.Product, error)

	ListCategories(ctx context.Context) iter.Seq2[*domain.Category, error]
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	blobs        blobstore.Store
	logger       *zap.Logger

	now      func() time.Time
	newToken func() string
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	blobs blobstore.Store,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		blobs:        blobs,
		logger:       logger,
		now:          time.Now,
		newToken:     uuid.NewString,
	}
}

var photoNameReplacer = strings.NewReplacer(" ", "", ":", "", `\`, "")

// PhotoFilename builds the stored name of an uploaded photo: the token, a dash,
// and the original name with spaces, colons and backslashes removed.
func PhotoFilename(token, original string) string {
	return token + "-" + photoNameReplacer.Replace(original)
}

func (s *productService) ListProducts(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return s.productRepo.FindAll(ctx)
}

// ListProductsUppercase is ListProducts with every name uppercased
func (s *productService) ListProductsUppercase(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		for product, err := range s.productRepo.FindAll(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			product.Name = strings.ToUpper(product.Name)
			s.logger.Debug(product.Name)
			if !yield(product, nil) {
				return
			}
		}
	}
}

func (s *productService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	product, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return product, nil
}

// CreateProduct validates a new product and stores it under a store-assigned id
func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validationError(product.Validate()); err != nil {
		return nil, err
	}

	product.ID = ""
	return s.SaveProduct(ctx, product)
}

// SaveProduct stores the product as given, defaulting CreatedAt. It does not validate.
func (s *productService) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Debug("Product saved", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, product *domain.Product) error {
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Debug("Product deleted", zap.String("product_id", product.ID))
	return nil
}

// UploadPhoto stores the photo and records it on the product.
// A nil product with a nil error means the id does not exist.
func (s *productService) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}

	if err := s.storePhoto(ctx, product, filename, r); err != nil {
		return nil, err
	}
	return s.SaveProduct(ctx, product)
}

// CreateWithPhoto stores the photo and then a new product referencing it
func (s *productService) CreateWithPhoto(ctx context.Context, product *domain.Product, filename string, r io.Reader) (*domain.Product, error) {
	product.ID = ""
	product.CreatedAt = s.now()

	if err := s.storePhoto(ctx, product, filename, r); err != nil {
		return nil, err
	}
	return s.SaveProduct(ctx, product)
}

func (s *productService) storePhoto(ctx context.Context, product *domain.Product, filename string, r io.Reader) error {
	name := PhotoFilename(s.newToken(), filename)
	if err := s.blobs.Put(ctx, name, r); err != nil {
		return fmt.Errorf("failed to store photo: %w", err)
	}

	product.Photo = name
	s.logger.Info("Photo stored", zap.String("product_id", product.ID), zap.String("photo", name))
	return nil
}
