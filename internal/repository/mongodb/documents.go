package mongodb

import (
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"nombre"`
	Price     *float64           `bson:"precio"`
	CreatedAt time.Time          `bson:"createAt"`
	Category  *embeddedCategory  `bson:"categoria"`
	Photo     string             `bson:"foto,omitempty"`
}

// embeddedCategory is the denormalized copy stored inside a product
type embeddedCategory struct {
	ID   string `bson:"id,omitempty"`
	Name string `bson:"nombre"`
}

type categoryDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"nombre"`
}

// parseID converts an opaque id into an ObjectID. An empty id maps to the
// zero ObjectID, which the store replaces on insert.
func parseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

func newProductDocument(p *domain.Product) (*productDocument, error) {
	oid, err := parseID(p.ID)
	if err != nil {
		return nil, err
	}
	doc := &productDocument{
		ID:        oid,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.UTC(),
		Photo:     p.Photo,
	}
	if p.Category != nil {
		doc.Category = &embeddedCategory{ID: p.Category.ID, Name: p.Category.Name}
	}
	return doc, nil
}

func (d *productDocument) toDomain() *domain.Product {
	p := &domain.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
		Photo:     d.Photo,
	}
	if d.Category != nil {
		p.Category = &domain.Category{ID: d.Category.ID, Name: d.Category.Name}
	}
	return p
}

func (d *categoryDocument) toDomain() *domain.Category {
	return &domain.Category{ID: d.ID.Hex(), Name: d.Name}
}
