package memory

import (
	"context"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
)

// CategoryRepository is an in-memory repository.CategoryRepository
type CategoryRepository struct {
	categories *collection[*domain.Category]
}

// NewCategoryRepository creates an empty in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: newCollection(
		(*domain.Category).EmbeddedCategory,
		func(c *domain.Category) *string { return &c.ID },
	)}
}

func (r *CategoryRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Category, error] {
	return r.categories.all(ctx)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories.get(id)
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	category, ok := r.categories.first(func(c *domain.Category) bool { return c.Name == name })
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.categories.put(category)
	return nil
}

func (r *CategoryRepository) Drop(ctx context.Context) error {
	r.categories.drop()
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
