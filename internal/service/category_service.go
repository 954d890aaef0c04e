package service

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"go.uber.org/zap"
)

func (s *productService) ListCategories(ctx context.Context) iter.Seq2[*domain.Category, error] {
	return s.categoryRepo.FindAll(ctx)
}

func (s *productService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *productService) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return category, nil
}

func (s *productService) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := validationError(category.Validate()); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.logger.Debug("Category saved", zap.String("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}
