package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fmma-backend/internal/domain/match"
)

func TestMatchRepository_SaveComparesVersion(t *testing.T) {
	ctx := t.Context()
	repo := NewMatchRepository(match.Match{ID: "m-1", Name: "Main Event"})

	loaded, ok, err := repo.GetByID(ctx, "m-1")
	if err != nil || !ok {
		t.Fatalf("get match: ok=%v err=%v", ok, err)
	}

	loaded.Name = "Co-Main"
	version, err := repo.Save(ctx, loaded)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}

	loaded.Name = "stale write"
	if _, err := repo.Save(ctx, loaded); !errors.Is(err, match.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	stored, _, _ := repo.GetByID(ctx, "m-1")
	if stored.Name != "Co-Main" {
		t.Fatalf("stale write landed: %q", stored.Name)
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	repo := NewMatchRepository(match.Match{ID: "m-1", Name: "Main Event"})

	loaded, _, _ := repo.GetByID(ctx, "m-1")
	if err := match.MergePredictions(&loaded, []match.PlayerSubmission{{PlayerName: "Ann"}}); err != nil {
		t.Fatalf("merge: %v", err)
	}

	stored, _, _ := repo.GetByID(ctx, "m-1")
	if len(stored.Predictions) != 0 {
		t.Fatalf("unsaved mutation leaked into store: %+v", stored.Predictions)
	}
}

func TestMatchRepository_DeleteKeepsOrder(t *testing.T) {
	ctx := t.Context()
	repo := NewMatchRepository(
		match.Match{ID: "a", Name: "A"},
		match.Match{ID: "b", Name: "B"},
		match.Match{ID: "c", Name: "C"},
	)

	deleted, err := repo.Delete(ctx, "b")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	if deleted, _ := repo.Delete(ctx, "b"); deleted {
		t.Fatalf("second delete should report missing")
	}

	items, _ := repo.List(ctx)
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "c" {
		t.Fatalf("unexpected list after delete: %+v", items)
	}
}
