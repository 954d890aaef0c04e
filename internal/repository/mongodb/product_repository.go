package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository over the productos collection
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(repository.ProductCollection)}
}

// FindAll streams every product straight from the cursor
func (r *productRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		cursor, err := r.collection.Find(ctx, bson.D{})
		if err != nil {
			yield(nil, fmt.Errorf("failed to list products: %w", err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc productDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("failed to decode product: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}

		if err := cursor.Err(); err != nil {
			yield(nil, fmt.Errorf("error iterating products: %w", err))
		}
	}
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil || oid.IsZero() {
		return nil, repository.ErrProductNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"nombre": name})
}

func (r *productRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var doc productDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return doc.toDomain(), nil
}

// Save inserts new products and replaces existing ones; last writer wins
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	doc, err := newProductDocument(product)
	if err != nil {
		return err
	}

	if doc.ID.IsZero() {
		result, err := r.collection.InsertOne(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		product.ID = idString(result.InsertedID)
		return nil
	}

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace product: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil || oid.IsZero() {
		return nil
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *productRepository) Drop(ctx context.Context) error {
	if err := r.collection.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop %s: %w", repository.ProductCollection, err)
	}
	return nil
}
