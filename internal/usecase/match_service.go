package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	idgen "github.com/riskibarqy/fmma-backend/internal/platform/id"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultMergeMaxAttempts = 3

type MatchServiceConfig struct {
	StatusPolicy     match.TransitionPolicy
	MergeMaxAttempts int
}

type CreateMatchInput struct {
	Category    string
	FighterA    string
	FighterB    string
	Name        string
	Description string
	VideoURL    string
	LiveURL     string
	Date        *time.Time
	Status      string
	Image       media.Image
}

// UpdateMatchDetailsInput carries optional fields; nil keeps the stored value.
type UpdateMatchDetailsInput struct {
	MatchID     string
	Category    *string
	FighterA    *string
	FighterB    *string
	Name        *string
	Description *string
	VideoURL    *string
	LiveURL     *string
	Date        *time.Time
}

type MatchService struct {
	repo        match.Repository
	uploader    media.Uploader
	idGen       idgen.Generator
	policy      match.TransitionPolicy
	maxAttempts int
	logger      *logging.Logger
	now         func() time.Time
}

func NewMatchService(
	repo match.Repository,
	uploader media.Uploader,
	idGen idgen.Generator,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MergeMaxAttempts <= 0 {
		cfg.MergeMaxAttempts = defaultMergeMaxAttempts
	}
	if cfg.StatusPolicy == "" {
		cfg.StatusPolicy = match.PolicyStrict
	}

	return &MatchService{
		repo:        repo,
		uploader:    uploader,
		idGen:       idGen,
		policy:      cfg.StatusPolicy,
		maxAttempts: cfg.MergeMaxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (item match.Match, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()
	defer func() { recordSpanError(span, err) }()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return match.Match{}, fmt.Errorf("%w: match name is required", ErrInvalidInput)
	}

	status := match.StatusScheduled
	if strings.TrimSpace(input.Status) != "" {
		status, err = match.ParseStatus(input.Status)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	imageURL, err := uploadImage(ctx, s.uploader, input.Image)
	if err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item = match.Match{
		ID:          matchID,
		ImageURL:    imageURL,
		Category:    strings.TrimSpace(input.Category),
		FighterA:    strings.TrimSpace(input.FighterA),
		FighterB:    strings.TrimSpace(input.FighterB),
		Name:        input.Name,
		Description: input.Description,
		VideoURL:    strings.TrimSpace(input.VideoURL),
		LiveURL:     strings.TrimSpace(input.LiveURL),
		Date:        input.Date,
		Status:      status,
		Predictions: []match.PlayerPredictions{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.ValidateBasic(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", item.ID, "status", string(item.Status))
	return item, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) UpdateDetails(ctx context.Context, input UpdateMatchDetailsInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateDetails")
	defer span.End()

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return match.Match{}, fmt.Errorf("%w: match name cannot be empty", ErrInvalidInput)
	}

	return s.mutate(ctx, input.MatchID, func(m *match.Match) error {
		assignTrimmed(&m.Category, input.Category)
		assignTrimmed(&m.FighterA, input.FighterA)
		assignTrimmed(&m.FighterB, input.FighterB)
		assignTrimmed(&m.Name, input.Name)
		assignTrimmed(&m.VideoURL, input.VideoURL)
		assignTrimmed(&m.LiveURL, input.LiveURL)
		if input.Description != nil {
			m.Description = *input.Description
		}
		if input.Date != nil {
			date := input.Date.UTC()
			m.Date = &date
		}
		return nil
	})
}

func (s *MatchService) UpdateStatus(ctx context.Context, matchID, rawStatus string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus")
	defer span.End()

	next, err := match.ParseStatus(rawStatus)
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	item, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		return m.ChangeStatus(s.policy, next)
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match status updated", "match_id", item.ID, "status", string(item.Status))
	return item, nil
}

// AddRoundResults upserts one round for both fighters of the discipline.
func (s *MatchService) AddRoundResults(ctx context.Context, matchID string, discipline match.Discipline, fighterOne, fighterTwo match.RoundStat) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddRoundResults")
	defer span.End()
	span.SetAttributes(
		attribute.String("match.discipline", string(discipline)),
		attribute.Int("match.fighter_one_round", fighterOne.Round),
	)

	if !discipline.Valid() {
		return match.Match{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, match.ErrUnknownDiscipline, discipline)
	}

	item, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		return match.MergeRoundStats(m, discipline, fighterOne, fighterTwo)
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match round results merged",
		"match_id", item.ID,
		"discipline", string(discipline),
		"fighter_one_round", fighterOne.Round,
		"fighter_two_round", fighterTwo.Round,
		"version", item.Version,
	)
	return item, nil
}

// AddPredictions merges a predictions batch into the match ledger. The batch
// is validated before the match is loaded, so an empty or malformed batch is
// ErrInvalidInput even when the id is unknown; the legacy API checked the id
// first and answered 404.
func (s *MatchService) AddPredictions(ctx context.Context, matchID string, batch []match.PlayerSubmission) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddPredictions")
	defer span.End()
	span.SetAttributes(attribute.Int("match.predictions_batch_size", len(batch)))

	if err := match.ValidatePredictions(batch); err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	item, err := s.mutate(ctx, matchID, func(m *match.Match) error {
		return match.MergePredictions(m, batch)
	})
	if err != nil {
		recordSpanError(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match predictions merged",
		"match_id", item.ID,
		"batch_size", len(batch),
		"ledger_size", len(item.Predictions),
		"version", item.Version,
	)
	return item, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)
	return nil
}

// mutate runs load, apply and compare-and-swap save, reloading on version
// conflicts until maxAttempts is reached.
func (s *MatchService) mutate(ctx context.Context, matchID string, apply func(*match.Match) error) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	for attempt := 1; ; attempt++ {
		current, exists, err := s.repo.GetByID(ctx, matchID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}

		next := current.Clone()
		if err := apply(&next); err != nil {
			return match.Match{}, classifyMatchError(err)
		}
		next.UpdatedAt = s.now().UTC()

		version, err := s.repo.Save(ctx, next)
		if err == nil {
			next.Version = version
			return next, nil
		}
		if !errors.Is(err, match.ErrVersionConflict) {
			return match.Match{}, fmt.Errorf("save match: %w", err)
		}
		if attempt >= s.maxAttempts {
			return match.Match{}, fmt.Errorf("%w: match=%s changed concurrently, gave up after %d attempts", ErrConflict, matchID, attempt)
		}

		s.logger.WarnContext(ctx, "match version conflict, retrying",
			"match_id", matchID,
			"attempt", attempt,
			"stale_version", current.Version,
		)
	}
}

func classifyMatchError(err error) error {
	switch {
	case errors.Is(err, match.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, match.ErrEmptyBatch),
		errors.Is(err, match.ErrInvalidRecord),
		errors.Is(err, match.ErrUnknownDiscipline),
		errors.Is(err, match.ErrUnknownStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}

func assignTrimmed(dst *string, value *string) {
	if value == nil {
		return
	}
	*dst = strings.TrimSpace(*value)
}
