package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fmma-backend/internal/domain/fighter"
)

type FighterRepository struct {
	store *orderedStore[fighter.Fighter]
}

func NewFighterRepository(fighters ...fighter.Fighter) *FighterRepository {
	repo := &FighterRepository{store: newOrderedStore[fighter.Fighter](nil)}
	for _, f := range fighters {
		repo.store.put(f.ID, f)
	}
	return repo
}

func (r *FighterRepository) List(_ context.Context) ([]fighter.Fighter, error) {
	return r.store.list(), nil
}

func (r *FighterRepository) GetByID(_ context.Context, fighterID string) (fighter.Fighter, bool, error) {
	item, ok := r.store.get(fighterID)
	return item, ok, nil
}

func (r *FighterRepository) GetByName(_ context.Context, name string) (fighter.Fighter, bool, error) {
	item, ok := r.store.find(func(f fighter.Fighter) bool { return f.Name == name })
	return item, ok, nil
}

func (r *FighterRepository) Create(_ context.Context, item fighter.Fighter) error {
	if _, exists := r.store.get(item.ID); exists {
		return fmt.Errorf("fighter %s already exists", item.ID)
	}
	r.store.put(item.ID, item)
	return nil
}

func (r *FighterRepository) Update(_ context.Context, item fighter.Fighter) (bool, error) {
	return r.store.replace(item.ID, item), nil
}

func (r *FighterRepository) Delete(_ context.Context, fighterID string) (bool, error) {
	return r.store.remove(fighterID), nil
}
