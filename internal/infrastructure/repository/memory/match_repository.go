package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fmma-backend/internal/domain/match"
)

// MatchRepository stores whole match documents guarded by a version check.
type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
}

func NewMatchRepository(matches ...match.Match) *MatchRepository {
	repo := &MatchRepository{items: make(map[string]match.Match, len(matches))}
	for _, m := range matches {
		if m.Version == 0 {
			m.Version = 1
		}
		repo.items[m.ID] = m.Clone()
		repo.orders = append(repo.orders, m.ID)
	}
	return repo
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id].Clone())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return m.Clone(), true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("match %s already exists", item.ID)
	}
	if item.Version == 0 {
		item.Version = 1
	}
	r.items[item.ID] = item.Clone()
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *MatchRepository) Save(_ context.Context, item match.Match) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return 0, fmt.Errorf("%w: match %s no longer exists", match.ErrVersionConflict, item.ID)
	}
	if current.Version != item.Version {
		return 0, fmt.Errorf("%w: match %s expected version %d, stored %d", match.ErrVersionConflict, item.ID, item.Version, current.Version)
	}

	stored := item.Clone()
	stored.Version = current.Version + 1
	stored.CreatedAt = current.CreatedAt
	r.items[item.ID] = stored
	return stored.Version, nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[matchID]; !ok {
		return false, nil
	}
	delete(r.items, matchID)
	for i, id := range r.orders {
		if id == matchID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return true, nil
}
