package server

import (
	"context"
	"fmt"

	"catalog-api/internal/blobstore"
	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/repository"
	"catalog-api/internal/repository/memory"
	"catalog-api/internal/repository/mongodb"
	"catalog-api/internal/repository/postgres"

	"go.uber.org/zap"
)

// Store bundles the repositories of one document store backend
type Store struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository

	health func(ctx context.Context) map[string]string
	close  func(ctx context.Context) error
}

// Health reports the backend status
func (s *Store) Health(ctx context.Context) map[string]string {
	if s.health == nil {
		return map[string]string{"status": "up"}
	}
	return s.health(ctx)
}

// Close releases the backend connection
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStore returns a store that lives only as long as the process
func NewMemoryStore() *Store {
	return &Store{
		Products:   memory.NewProductRepository(),
		Categories: memory.NewCategoryRepository(),
		health: func(context.Context) map[string]string {
			return map[string]string{"driver": config.StoreMemory, "status": "up"}
		},
	}
}

// OpenStore connects to the document store selected by cfg.Store.Driver
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		m, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
		return &Store{
			Products:   mongodb.NewProductRepository(m.Database()),
			Categories: mongodb.NewCategoryRepository(m.Database()),
			health:     m.Health,
			close:      m.Close,
		}, nil

	case config.StorePostgres:
		pg, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(pg.DB(), logger); err != nil {
			pg.Close(ctx)
			return nil, err
		}
		logger.Info("Connected to PostgreSQL", zap.String("database", cfg.Database.Database))
		return &Store{
			Products:   postgres.NewProductRepository(pg.DB()),
			Categories: postgres.NewCategoryRepository(pg.DB()),
			health:     pg.Health,
			close:      pg.Close,
		}, nil

	case config.StoreMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// OpenBlobStore creates the photo store selected by cfg.Upload.Driver
func OpenBlobStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (blobstore.Store, error) {
	switch cfg.Upload.Driver {
	case config.UploadLocal:
		return blobstore.NewLocal(cfg.Upload.Dir)
	case config.UploadS3:
		return blobstore.NewS3(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, cfg.S3.Endpoint, logger)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Upload.Driver)
	}
}
