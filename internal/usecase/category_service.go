package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/domain/category"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
)

type CategoryService struct {
	repo  category.Repository
	idGen idgen.Generator
}

func NewCategoryService(repo category.Repository, idGen idgen.Generator) *CategoryService {
	return &CategoryService{repo: repo, idGen: idGen}
}

func (s *CategoryService) Create(ctx context.Context, name string) (category.Category, error) {
	categoryID, err := s.idGen.NewID()
	if err != nil {
		return category.Category{}, fmt.Errorf("generate category id: %w", err)
	}

	item := category.Category{ID: categoryID, Name: strings.TrimSpace(name)}
	if err := item.Validate(); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return category.Category{}, fmt.Errorf("create category: %w", err)
	}
	return item, nil
}

func (s *CategoryService) Get(ctx context.Context, categoryID string) (category.Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return category.Category{}, fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return category.Category{}, fmt.Errorf("get category: %w", err)
	}
	if !exists {
		return category.Category{}, fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
	}
	return item, nil
}

func (s *CategoryService) List(ctx context.Context) ([]category.Category, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (s *CategoryService) Update(ctx context.Context, categoryID, name string) (category.Category, error) {
	item := category.Category{ID: strings.TrimSpace(categoryID), Name: strings.TrimSpace(name)}
	if err := item.Validate(); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return category.Category{}, fmt.Errorf("update category: %w", err)
	}
	if !updated {
		return category.Category{}, fmt.Errorf("%w: category=%s", ErrNotFound, item.ID)
	}
	return item, nil
}

func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
	}
	return nil
}
