package combatmove

import "context"

type Repository interface {
	List(ctx context.Context) ([]CombatMove, error)
	GetByID(ctx context.Context, moveID string) (CombatMove, bool, error)
	Create(ctx context.Context, item CombatMove) error
	Update(ctx context.Context, item CombatMove) (bool, error)
	Delete(ctx context.Context, moveID string) (bool, error)
}
