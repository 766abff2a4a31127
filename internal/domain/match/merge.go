package match

import (
	"fmt"
	"strings"
)

type roundKeyed interface {
	roundNumber() int
}

// upsertRound replaces the first element with the same round in place or
// appends the incoming record at the tail.
func upsertRound[T roundKeyed](items []T, incoming T) []T {
	for i := range items {
		if items[i].roundNumber() == incoming.roundNumber() {
			items[i] = incoming
			return items
		}
	}
	return append(items, incoming)
}

// MergeRoundStats upserts one round for each fighter of the chosen discipline.
// Records are fully replaced, never patched field by field.
func MergeRoundStats(m *Match, d Discipline, fighterOne, fighterTwo RoundStat) error {
	block, err := m.Block(d)
	if err != nil {
		return err
	}
	block.FighterOne = upsertRound(block.FighterOne, fighterOne.clone())
	block.FighterTwo = upsertRound(block.FighterTwo, fighterTwo.clone())
	return nil
}

// ValidatePredictions checks the batch shape without touching any match.
func ValidatePredictions(batch []PlayerSubmission) error {
	if len(batch) == 0 {
		return ErrEmptyBatch
	}
	for i, submission := range batch {
		if strings.TrimSpace(submission.PlayerName) == "" {
			return fmt.Errorf("%w: predictions[%d].playerName is required", ErrInvalidRecord, i)
		}
	}
	return nil
}

// MergePredictions applies a batch in order. The whole batch is checked first
// so a rejected batch leaves the match untouched.
func MergePredictions(m *Match, batch []PlayerSubmission) error {
	if err := ValidatePredictions(batch); err != nil {
		return err
	}

	for _, submission := range batch {
		idx := m.ledgerIndex(submission.PlayerName)
		if idx < 0 {
			m.Predictions = append(m.Predictions, PlayerPredictions{
				PlayerName: submission.PlayerName,
				Boxing:     []RoundPrediction{},
				MMA:        []RoundPrediction{},
			})
			idx = len(m.Predictions) - 1
		}

		entry := &m.Predictions[idx]
		for _, prediction := range submission.Boxing {
			entry.Boxing = upsertRound(entry.Boxing, prediction.clone())
		}
		for _, prediction := range submission.MMA {
			entry.MMA = upsertRound(entry.MMA, prediction.clone())
		}
	}
	return nil
}
