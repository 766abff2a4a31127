package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
)

type CombatMoveInput struct {
	Category     string
	AttackName   string
	AttackDamage string
	AttackKey    string
}

type CombatMoveService struct {
	repo  combatmove.Repository
	idGen idgen.Generator
}

func NewCombatMoveService(repo combatmove.Repository, idGen idgen.Generator) *CombatMoveService {
	return &CombatMoveService{repo: repo, idGen: idGen}
}

func (s *CombatMoveService) Create(ctx context.Context, input CombatMoveInput) (combatmove.CombatMove, error) {
	moveID, err := s.idGen.NewID()
	if err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("generate combat move id: %w", err)
	}

	item := input.toModel(moveID)
	if err := item.Validate(); err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("create combat move: %w", err)
	}
	return item, nil
}

func (s *CombatMoveService) Get(ctx context.Context, moveID string) (combatmove.CombatMove, error) {
	moveID = strings.TrimSpace(moveID)
	if moveID == "" {
		return combatmove.CombatMove{}, fmt.Errorf("%w: combat move id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, moveID)
	if err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("get combat move: %w", err)
	}
	if !exists {
		return combatmove.CombatMove{}, fmt.Errorf("%w: combat move=%s", ErrNotFound, moveID)
	}
	return item, nil
}

func (s *CombatMoveService) List(ctx context.Context) ([]combatmove.CombatMove, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list combat moves: %w", err)
	}
	return items, nil
}

func (s *CombatMoveService) Update(ctx context.Context, moveID string, input CombatMoveInput) (combatmove.CombatMove, error) {
	item := input.toModel(strings.TrimSpace(moveID))
	if err := item.Validate(); err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return combatmove.CombatMove{}, fmt.Errorf("update combat move: %w", err)
	}
	if !updated {
		return combatmove.CombatMove{}, fmt.Errorf("%w: combat move=%s", ErrNotFound, item.ID)
	}
	return item, nil
}

func (s *CombatMoveService) Delete(ctx context.Context, moveID string) error {
	moveID = strings.TrimSpace(moveID)
	if moveID == "" {
		return fmt.Errorf("%w: combat move id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, moveID)
	if err != nil {
		return fmt.Errorf("delete combat move: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: combat move=%s", ErrNotFound, moveID)
	}
	return nil
}

func (in CombatMoveInput) toModel(moveID string) combatmove.CombatMove {
	return combatmove.CombatMove{
		ID:           moveID,
		Category:     strings.TrimSpace(in.Category),
		AttackName:   strings.TrimSpace(in.AttackName),
		AttackDamage: strings.TrimSpace(in.AttackDamage),
		AttackKey:    strings.TrimSpace(in.AttackKey),
	}
}
