package repository

import (
	"context"
	"errors"
	"iter"

	"catalog-api/internal/domain"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindAll(ctx context.Context) iter.Seq2[*domain.Category, error]
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	Drop(ctx context.Context) error
}

// Collect drains a lazy sequence into a slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	items := []T{}
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
