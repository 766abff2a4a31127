package match

import (
	"fmt"
	"strings"
	"time"
)

// Discipline selects the rule set a round record belongs to.
type Discipline string

const (
	DisciplineBoxing Discipline = "boxing"
	DisciplineMMA    Discipline = "mma"
)

func ParseDiscipline(raw string) (Discipline, error) {
	switch Discipline(strings.ToLower(strings.TrimSpace(raw))) {
	case DisciplineBoxing:
		return DisciplineBoxing, nil
	case DisciplineMMA:
		return DisciplineMMA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDiscipline, raw)
	}
}

func (d Discipline) Valid() bool {
	return d == DisciplineBoxing || d == DisciplineMMA
}

// RoundStat is one fighter's counters for one round, keyed by Round.
type RoundStat struct {
	Round  int
	Values map[string]float64
}

func (r RoundStat) roundNumber() int { return r.Round }

func (r RoundStat) clone() RoundStat {
	return RoundStat{Round: r.Round, Values: cloneValues(r.Values)}
}

// RoundPrediction is one player's guessed values for one round, keyed by Round.
type RoundPrediction struct {
	Round  int
	Values map[string]float64
}

func (r RoundPrediction) roundNumber() int { return r.Round }

func (r RoundPrediction) clone() RoundPrediction {
	return RoundPrediction{Round: r.Round, Values: cloneValues(r.Values)}
}

// StatBlock holds both fighters' round sequences for one discipline.
type StatBlock struct {
	FighterOne []RoundStat
	FighterTwo []RoundStat
}

// PlayerPredictions is the ledger entry of one player inside a match.
type PlayerPredictions struct {
	PlayerName string
	Boxing     []RoundPrediction
	MMA        []RoundPrediction
}

// PlayerSubmission is one element of a predictions batch.
type PlayerSubmission struct {
	PlayerName string
	Boxing     []RoundPrediction
	MMA        []RoundPrediction
}

// Match is the aggregate root for round stats and the prediction ledger.
type Match struct {
	ID          string
	ImageURL    string
	Category    string
	FighterA    string
	FighterB    string
	Name        string
	Description string
	VideoURL    string
	LiveURL     string
	Date        *time.Time
	Status      Status
	Boxing      StatBlock
	MMA         StatBlock
	Predictions []PlayerPredictions
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Match) ValidateBasic() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("match name is required")
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (m Match) Clone() Match {
	copied := m
	if m.Date != nil {
		date := *m.Date
		copied.Date = &date
	}
	copied.Boxing = m.Boxing.clone()
	copied.MMA = m.MMA.clone()
	if m.Predictions != nil {
		copied.Predictions = make([]PlayerPredictions, 0, len(m.Predictions))
		for _, p := range m.Predictions {
			copied.Predictions = append(copied.Predictions, PlayerPredictions{
				PlayerName: p.PlayerName,
				Boxing:     clonePredictions(p.Boxing),
				MMA:        clonePredictions(p.MMA),
			})
		}
	}
	return copied
}

// Block returns the stat block for the given discipline.
func (m *Match) Block(d Discipline) (*StatBlock, error) {
	switch d {
	case DisciplineBoxing:
		return &m.Boxing, nil
	case DisciplineMMA:
		return &m.MMA, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDiscipline, d)
	}
}

// LedgerEntry returns the ledger entry for an exact player name.
func (m Match) LedgerEntry(playerName string) (PlayerPredictions, bool) {
	idx := m.ledgerIndex(playerName)
	if idx < 0 {
		return PlayerPredictions{}, false
	}
	return m.Predictions[idx], true
}

func (m Match) ledgerIndex(playerName string) int {
	for i := range m.Predictions {
		if m.Predictions[i].PlayerName == playerName {
			return i
		}
	}
	return -1
}

func (b StatBlock) clone() StatBlock {
	return StatBlock{
		FighterOne: cloneStats(b.FighterOne),
		FighterTwo: cloneStats(b.FighterTwo),
	}
}

func cloneStats(items []RoundStat) []RoundStat {
	if items == nil {
		return nil
	}
	out := make([]RoundStat, 0, len(items))
	for _, item := range items {
		out = append(out, item.clone())
	}
	return out
}

func clonePredictions(items []RoundPrediction) []RoundPrediction {
	if items == nil {
		return nil
	}
	out := make([]RoundPrediction, 0, len(items))
	for _, item := range items {
		out = append(out, item.clone())
	}
	return out
}

func cloneValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
