package repository

import (
	"context"
	"errors"
	"iter"

	"catalog-api/internal/domain"
)

// Collection names shared by every store backend
const (
	ProductCollection  = "productos"
	CategoryCollection = "categorias"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid document id")
)

// ProductRepository defines the interface for product data access.
// FindAll yields products lazily in store order and stops at the first error.
// Save inserts when the product has no ID (assigning one) and replaces the
// whole document otherwise.
type ProductRepository interface {
	FindAll(ctx context.Context) iter.Seq2[*domain.Product, error]
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	Drop(ctx context.Context) error
}
