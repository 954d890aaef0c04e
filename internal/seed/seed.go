package seed

import (
	"context"
	"fmt"
	"sync"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Category names
const (
	Electronics = "Electrónica"
	Sports      = "Deporte"
	Computing   = "Informática"
	Furniture   = "Muebles"
)

type productSeed struct {
	name     string
	price    float64
	category string
}

var categories = []string{Electronics, Sports, Computing, Furniture}

var products = []productSeed{
	{"TV Panasonic Pantalla LCD", 456.89, Electronics},
	{"Sony Camara HD Digital", 177.89, Electronics},
	{"Apple Ipod", 46.89, Electronics},
	{"Sony Notebook", 846.89, Computing},
	{"Hewlett Packard Multifuncional", 200.89, Computing},
	{"Bianchi Bicicleta", 70.89, Sports},
	{"HP Notebook Omen 17", 2500.89, Computing},
	{"Mica Cómoda 5 Cajones", 150.89, Furniture},
	{"TV Sony Bravia OLED 4k Ultra HD", 2255.89, Electronics},
}

// ProductCount is the number of products Run inserts
var ProductCount = len(products)

// Seeder resets both collections to the bootstrap catalog
type Seeder struct {
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	productService service.ProductService
	logger         *zap.Logger
}

func New(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	productService service.ProductService,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		productService: productService,
		logger:         logger,
	}
}

// Run drops both collections, then saves the categories and the products.
// Saves within each step run concurrently; products wait for all categories.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.productRepo.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop products: %w", err)
	}
	if err := s.categoryRepo.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop categories: %w", err)
	}

	saved, err := s.saveCategories(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ps := range products {
		g.Go(func() error {
			product := domain.NewProduct(ps.name, ps.price, saved[ps.category].EmbeddedCategory())
			if _, err := s.productService.SaveProduct(gctx, product); err != nil {
				return fmt.Errorf("failed to seed product %q: %w", ps.name, err)
			}
			s.logger.Info("Insert", zap.String("product_id", product.ID), zap.String("name", product.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("Catalog seeded", zap.Int("categories", len(saved)), zap.Int("products", len(products)))
	return nil
}

func (s *Seeder) saveCategories(ctx context.Context) (map[string]*domain.Category, error) {
	var mu sync.Mutex
	saved := make(map[string]*domain.Category, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range categories {
		g.Go(func() error {
			category, err := s.productService.SaveCategory(gctx, &domain.Category{Name: name})
			if err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
			s.logger.Info("Categoría creada", zap.String("category_id", category.ID), zap.String("name", category.Name))

			mu.Lock()
			saved[name] = category
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return saved, nil
}
