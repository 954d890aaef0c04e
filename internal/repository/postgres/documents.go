package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"catalog-api/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// upsertSuffix turns an insert into a full-document replace when the id exists
const upsertSuffix = "ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc"

// productDocument is the JSONB body of a productos row; the id lives in its own column
type productDocument struct {
	Name      string           `json:"nombre"`
	Price     *float64         `json:"precio"`
	CreatedAt time.Time        `json:"createAt"`
	Category  *domain.Category `json:"categoria"`
	Photo     string           `json:"foto,omitempty"`
}

type categoryDocument struct {
	Name string `json:"nombre"`
}

func encodeProduct(p *domain.Product) (string, error) {
	b, err := json.Marshal(productDocument{
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.UTC(),
		Category:  p.Category,
		Photo:     p.Photo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode product: %w", err)
	}
	return string(b), nil
}

func decodeProduct(id string, raw []byte) (*domain.Product, error) {
	var doc productDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return &domain.Product{
		ID:        id,
		Name:      doc.Name,
		Price:     doc.Price,
		CreatedAt: doc.CreatedAt,
		Category:  doc.Category,
		Photo:     doc.Photo,
	}, nil
}

func encodeCategory(c *domain.Category) (string, error) {
	b, err := json.Marshal(categoryDocument{Name: c.Name})
	if err != nil {
		return "", fmt.Errorf("failed to encode category: %w", err)
	}
	return string(b), nil
}

func decodeCategory(id string, raw []byte) (*domain.Category, error) {
	var doc categoryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode category %s: %w", id, err)
	}
	return &domain.Category{ID: id, Name: doc.Name}, nil
}
