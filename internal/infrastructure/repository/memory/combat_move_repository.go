package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
)

type CombatMoveRepository struct {
	store *orderedStore[combatmove.CombatMove]
}

func NewCombatMoveRepository(moves ...combatmove.CombatMove) *CombatMoveRepository {
	repo := &CombatMoveRepository{store: newOrderedStore[combatmove.CombatMove](nil)}
	for _, m := range moves {
		repo.store.put(m.ID, m)
	}
	return repo
}

func (r *CombatMoveRepository) List(_ context.Context) ([]combatmove.CombatMove, error) {
	return r.store.list(), nil
}

func (r *CombatMoveRepository) GetByID(_ context.Context, moveID string) (combatmove.CombatMove, bool, error) {
	item, ok := r.store.get(moveID)
	return item, ok, nil
}

func (r *CombatMoveRepository) Create(_ context.Context, item combatmove.CombatMove) error {
	if _, exists := r.store.get(item.ID); exists {
		return fmt.Errorf("combat move %s already exists", item.ID)
	}
	r.store.put(item.ID, item)
	return nil
}

func (r *CombatMoveRepository) Update(_ context.Context, item combatmove.CombatMove) (bool, error) {
	return r.store.replace(item.ID, item), nil
}

func (r *CombatMoveRepository) Delete(_ context.Context, moveID string) (bool, error) {
	return r.store.remove(moveID), nil
}
