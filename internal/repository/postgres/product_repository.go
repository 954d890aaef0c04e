package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a product repository storing JSONB documents
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindAll streams products in insertion order
func (r *productRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Product, error] {
	return func(yield func(*domain.Product, error) bool) {
		query, args, err := psql.Select("id", "doc").
			From(repository.ProductCollection).
			OrderBy("seq").
			ToSql()
		if err != nil {
			yield(nil, fmt.Errorf("failed to build list query: %w", err))
			return
		}

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("failed to list products: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id  string
				raw []byte
			)
			if err := rows.Scan(&id, &raw); err != nil {
				yield(nil, fmt.Errorf("failed to scan product: %w", err))
				return
			}
			product, err := decodeProduct(id, raw)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(product, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("error iterating products: %w", err))
		}
	}
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, psql.Select("id", "doc").
		From(repository.ProductCollection).
		Where(sq.Eq{"id": id}))
}

// FindByName returns the earliest stored product with the given name
func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, psql.Select("id", "doc").
		From(repository.ProductCollection).
		Where("doc->>'nombre' = ?", name).
		OrderBy("seq").
		Limit(1))
}

func (r *productRepository) findOne(ctx context.Context, builder sq.SelectBuilder) (*domain.Product, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	var (
		id  string
		raw []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return decodeProduct(id, raw)
}

// Save inserts or fully replaces the product document
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	doc, err := encodeProduct(product)
	if err != nil {
		return err
	}

	id := product.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := psql.Insert(repository.ProductCollection).
		Columns("id", "doc").
		Values(id, doc).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	product.ID = id
	return nil
}

// Delete removes a product; a missing row is not an error
func (r *productRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(repository.ProductCollection).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Drop empties the table; the schema itself belongs to the migrations
func (r *productRepository) Drop(ctx context.Context) error {
	query, args, err := psql.Delete(repository.ProductCollection).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build drop query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to drop %s: %w", repository.ProductCollection, err)
	}
	return nil
}
