package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	basecache "github.com/riskibarqy/fmma-backend/internal/platform/cache"
)

const (
	matchListKey    = "match:list"
	matchByIDPrefix = "match:id:"
)

type cachedMatches struct {
	item   match.Match
	exists bool
	items  []match.Match
}

// MatchRepository is a read-through decorator. Every write drops the affected
// keys; a version conflict drops them too so the retry reloads from the store.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store[cachedMatches]
}

func NewMatchRepository(next match.Repository, ttl time.Duration) *MatchRepository {
	return &MatchRepository{next: next, cache: basecache.NewStore[cachedMatches](ttl)}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, matchListKey, func(ctx context.Context) (cachedMatches, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return cachedMatches{}, err
		}
		return cachedMatches{items: cloneMatches(items)}, nil
	})
	if err != nil {
		return nil, err
	}

	return cloneMatches(v.items), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchByIDPrefix+matchID, func(ctx context.Context) (cachedMatches, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return cachedMatches{}, err
		}
		return cachedMatches{item: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}
	if !v.exists {
		return match.Match{}, false, nil
	}

	return v.item.Clone(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	defer r.invalidate(ctx, item.ID)
	return r.next.Create(ctx, item)
}

func (r *MatchRepository) Save(ctx context.Context, item match.Match) (int64, error) {
	version, err := r.next.Save(ctx, item)
	r.invalidate(ctx, item.ID)
	if err != nil {
		return 0, err
	}

	return version, nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) (bool, error) {
	defer r.invalidate(ctx, matchID)
	return r.next.Delete(ctx, matchID)
}

func (r *MatchRepository) invalidate(ctx context.Context, matchID string) {
	r.cache.Delete(ctx, matchListKey, matchByIDPrefix+matchID)
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
