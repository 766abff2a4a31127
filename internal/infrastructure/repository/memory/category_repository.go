package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fmma-backend/internal/domain/category"
)

type CategoryRepository struct {
	store *orderedStore[category.Category]
}

func NewCategoryRepository(categories ...category.Category) *CategoryRepository {
	repo := &CategoryRepository{store: newOrderedStore[category.Category](nil)}
	for _, c := range categories {
		repo.store.put(c.ID, c)
	}
	return repo
}

func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	return r.store.list(), nil
}

func (r *CategoryRepository) GetByID(_ context.Context, categoryID string) (category.Category, bool, error) {
	item, ok := r.store.get(categoryID)
	return item, ok, nil
}

func (r *CategoryRepository) Create(_ context.Context, item category.Category) error {
	if _, exists := r.store.get(item.ID); exists {
		return fmt.Errorf("category %s already exists", item.ID)
	}
	r.store.put(item.ID, item)
	return nil
}

func (r *CategoryRepository) Update(_ context.Context, item category.Category) (bool, error) {
	return r.store.replace(item.ID, item), nil
}

func (r *CategoryRepository) Delete(_ context.Context, categoryID string) (bool, error) {
	return r.store.remove(categoryID), nil
}
