package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a category repository over the categorias collection
func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &categoryRepository{collection: db.Collection(repository.CategoryCollection)}
}

func (r *categoryRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Category, error] {
	return func(yield func(*domain.Category, error) bool) {
		cursor, err := r.collection.Find(ctx, bson.D{})
		if err != nil {
			yield(nil, fmt.Errorf("failed to list categories: %w", err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc categoryDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("failed to decode category: %w", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}

		if err := cursor.Err(); err != nil {
			yield(nil, fmt.Errorf("error iterating categories: %w", err))
		}
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := parseID(id)
	if err != nil || oid.IsZero() {
		return nil, repository.ErrCategoryNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"nombre": name})
}

func (r *categoryRepository) findOne(ctx context.Context, filter bson.M) (*domain.Category, error) {
	var doc categoryDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	oid, err := parseID(category.ID)
	if err != nil {
		return err
	}
	doc := categoryDocument{ID: oid, Name: category.Name}

	if oid.IsZero() {
		result, err := r.collection.InsertOne(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to insert category: %w", err)
		}
		category.ID = idString(result.InsertedID)
		return nil
	}

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Drop(ctx context.Context) error {
	if err := r.collection.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop %s: %w", repository.CategoryCollection, err)
	}
	return nil
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
