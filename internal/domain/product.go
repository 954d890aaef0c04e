package domain

import "time"

// Product represents a product in the catalog.
// Category is an embedded copy taken at write time; it is not kept in sync
// with later edits of the referenced category.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre" validate:"notblank"`
	Price     *float64  `json:"precio" validate:"required"`
	CreatedAt time.Time `json:"createAt"`
	Category  *Category `json:"categoria" validate:"required"`
	Photo     string    `json:"foto,omitempty"`
}

// Category represents a product category
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// NewProduct builds a product with the given name, price and category.
func NewProduct(name string, price float64, category *Category) *Product {
	return &Product{
		Name:     name,
		Price:    &price,
		Category: category,
	}
}

// PriceValue returns the price, or zero when it was never set.
func (p *Product) PriceValue() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// EmbeddedCategory returns a copy of c suitable for embedding in a product.
func (c *Category) EmbeddedCategory() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
