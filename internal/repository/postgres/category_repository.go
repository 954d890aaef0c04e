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

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll(ctx context.Context) iter.Seq2[*domain.Category, error] {
	return func(yield func(*domain.Category, error) bool) {
		query, args, err := psql.Select("id", "doc").
			From(repository.CategoryCollection).
			OrderBy("seq").
			ToSql()
		if err != nil {
			yield(nil, fmt.Errorf("failed to build list query: %w", err))
			return
		}

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("failed to list categories: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id  string
				raw []byte
			)
			if err := rows.Scan(&id, &raw); err != nil {
				yield(nil, fmt.Errorf("failed to scan category: %w", err))
				return
			}
			category, err := decodeCategory(id, raw)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(category, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("error iterating categories: %w", err))
		}
	}
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.findOne(ctx, psql.Select("id", "doc").
		From(repository.CategoryCollection).
		Where(sq.Eq{"id": id}))
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, psql.Select("id", "doc").
		From(repository.CategoryCollection).
		Where("doc->>'nombre' = ?", name).
		OrderBy("seq").
		Limit(1))
}

func (r *categoryRepository) findOne(ctx context.Context, builder sq.SelectBuilder) (*domain.Category, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	var (
		id  string
		raw []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return decodeCategory(id, raw)
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	doc, err := encodeCategory(category)
	if err != nil {
		return err
	}

	id := category.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := psql.Insert(repository.CategoryCollection).
		Columns("id", "doc").
		Values(id, doc).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	category.ID = id
	return nil
}

func (r *categoryRepository) Drop(ctx context.Context) error {
	query, args, err := psql.Delete(repository.CategoryCollection).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build drop query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to drop %s: %w", repository.CategoryCollection, err)
	}
	return nil
}
