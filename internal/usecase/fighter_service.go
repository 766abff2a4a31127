package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/domain/fighter"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
)

type CreateFighterInput struct {
	Name        string
	Description string
	Category    string
	Image       media.Image
}

type UpdateFighterInput struct {
	FighterID   string
	Name        *string
	Description *string
	Category    *string
}

type FighterService struct {
	repo     fighter.Repository
	uploader media.Uploader
	idGen    idgen.Generator
}

func NewFighterService(repo fighter.Repository, uploader media.Uploader, idGen idgen.Generator) *FighterService {
	return &FighterService{
		repo:     repo,
		uploader: uploader,
		idGen:    idGen,
	}
}

func (s *FighterService) Create(ctx context.Context, input CreateFighterInput) (fighter.Fighter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FighterService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter name is required", ErrInvalidInput)
	}

	imageURL, err := uploadImage(ctx, s.uploader, input.Image)
	if err != nil {
		recordSpanError(span, err)
		return fighter.Fighter{}, err
	}

	fighterID, err := s.idGen.NewID()
	if err != nil {
		return fighter.Fighter{}, fmt.Errorf("generate fighter id: %w", err)
	}

	item := fighter.Fighter{
		ID:          fighterID,
		ImageURL:    imageURL,
		Name:        input.Name,
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
	}
	if err := item.Validate(); err != nil {
		return fighter.Fighter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return fighter.Fighter{}, fmt.Errorf("create fighter: %w", err)
	}

	return item, nil
}

func (s *FighterService) Get(ctx context.Context, fighterID string) (fighter.Fighter, error) {
	fighterID = strings.TrimSpace(fighterID)
	if fighterID == "" {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, fighterID)
	if err != nil {
		return fighter.Fighter{}, fmt.Errorf("get fighter: %w", err)
	}
	if !exists {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter=%s", ErrNotFound, fighterID)
	}

	return item, nil
}

// GetByName matches the exact fighter name.
func (s *FighterService) GetByName(ctx context.Context, name string) (fighter.Fighter, error) {
	if strings.TrimSpace(name) == "" {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter name is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fighter.Fighter{}, fmt.Errorf("get fighter by name: %w", err)
	}
	if !exists {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter name=%s", ErrNotFound, name)
	}

	return item, nil
}

func (s *FighterService) List(ctx context.Context) ([]fighter.Fighter, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	return items, nil
}

func (s *FighterService) Update(ctx context.Context, input UpdateFighterInput) (fighter.Fighter, error) {
	item, err := s.Get(ctx, input.FighterID)
	if err != nil {
		return fighter.Fighter{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if err := item.Validate(); err != nil {
		return fighter.Fighter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return fighter.Fighter{}, fmt.Errorf("update fighter: %w", err)
	}
	if !updated {
		return fighter.Fighter{}, fmt.Errorf("%w: fighter=%s", ErrNotFound, item.ID)
	}

	return item, nil
}

func (s *FighterService) Delete(ctx context.Context, fighterID string) error {
	fighterID = strings.TrimSpace(fighterID)
	if fighterID == "" {
		return fmt.Errorf("%w: fighter id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, fighterID)
	if err != nil {
		return fmt.Errorf("delete fighter: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: fighter=%s", ErrNotFound, fighterID)
	}
	return nil
}
