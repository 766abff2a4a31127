package fighter

import "context"

// Repository describes fighter persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Fighter, error)
	GetByID(ctx context.Context, fighterID string) (Fighter, bool, error)
	GetByName(ctx context.Context, name string) (Fighter, bool, error)
	Create(ctx context.Context, item Fighter) error
	Update(ctx context.Context, item Fighter) (bool, error)
	Delete(ctx context.Context, fighterID string) (bool, error)
}
