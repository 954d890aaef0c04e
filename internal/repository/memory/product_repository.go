package memory

import (
	"context"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
)

// ProductRepository is an in-memory repository.ProductRepository
type ProductRepository struct {
	products *collection[*domain.Product]
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: newCollection(cloneProduct, func(p *domain.Product) *string { return &p.ID })}
}

func (r *ProductRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return r.products.all(ctx)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := r.products.get(id)
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	product, ok := r.products.first(func(p *domain.Product) bool { return p.Name == name })
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.products.put(product)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.products.remove(id)
	return nil
}

func (r *ProductRepository) Drop(ctx context.Context) error {
	r.products.drop()
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	if p.Price != nil {
		price := *p.Price
		cp.Price = &price
	}
	cp.Category = p.Category.EmbeddedCategory()
	return &cp
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
