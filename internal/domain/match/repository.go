package match

import "context"

// Repository describes whole-document match persistence.
// Save is a compare-and-swap on Version and returns the stored version;
// a stale Version fails with ErrVersionConflict.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	Save(ctx context.Context, item Match) (int64, error)
	Delete(ctx context.Context, matchID string) (bool, error)
}
