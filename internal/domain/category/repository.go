package category

import "context"

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, categoryID string) (Category, bool, error)
	Create(ctx context.Context, item Category) error
	Update(ctx context.Context, item Category) (bool, error)
	Delete(ctx context.Context, categoryID string) (bool, error)
}
