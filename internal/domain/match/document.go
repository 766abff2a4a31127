package match

import (
	"fmt"
	"time"
)

// Document is the wire and storage shape of a match. Round records are kept
// flat so unknown counters survive a round trip.
type Document struct {
	ID          string                      `json:"_id"`
	ImageURL    string                      `json:"url"`
	Category    string                      `json:"matchCategory"`
	FighterA    string                      `json:"matchFighterA"`
	FighterB    string                      `json:"matchFighterB"`
	Name        string                      `json:"matchName"`
	Description string                      `json:"matchDescription"`
	VideoURL    string                      `json:"matchVideoUrl"`
	LiveURL     string                      `json:"matchLive"`
	Date        *time.Time                  `json:"matchDate,omitempty"`
	Status      string                      `json:"matchStatus"`
	Boxing      StatBlockDocument           `json:"BoxingMatch"`
	MMA         StatBlockDocument           `json:"MmaMatch"`
	Predictions []PlayerPredictionsDocument `json:"usersPredictions"`
	Version     int64                       `json:"version"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

type StatBlockDocument struct {
	FighterOne []map[string]any `json:"fighterOneStats"`
	FighterTwo []map[string]any `json:"fighterTwoStats"`
}

type PlayerPredictionsDocument struct {
	PlayerName string           `json:"playerName"`
	Boxing     []map[string]any `json:"predictionsForBoxing"`
	MMA        []map[string]any `json:"predictionsForMMA"`
}

func ToDocument(m Match) Document {
	predictions := make([]PlayerPredictionsDocument, 0, len(m.Predictions))
	for _, p := range m.Predictions {
		predictions = append(predictions, PlayerPredictionsDocument{
			PlayerName: p.PlayerName,
			Boxing:     predictionFields(p.Boxing),
			MMA:        predictionFields(p.MMA),
		})
	}

	return Document{
		ID:          m.ID,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		FighterA:    m.FighterA,
		FighterB:    m.FighterB,
		Name:        m.Name,
		Description: m.Description,
		VideoURL:    m.VideoURL,
		LiveURL:     m.LiveURL,
		Date:        m.Date,
		Status:      string(m.Status),
		Boxing:      blockDocument(m.Boxing),
		MMA:         blockDocument(m.MMA),
		Predictions: predictions,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDocument rebuilds a match; stored labels are kept verbatim.
func FromDocument(doc Document) (Match, error) {
	boxing, err := blockFromDocument(doc.Boxing)
	if err != nil {
		return Match{}, fmt.Errorf("BoxingMatch: %w", err)
	}
	mma, err := blockFromDocument(doc.MMA)
	if err != nil {
		return Match{}, fmt.Errorf("MmaMatch: %w", err)
	}

	predictions := make([]PlayerPredictions, 0, len(doc.Predictions))
	for i, p := range doc.Predictions {
		boxingPredictions, err := predictionsFromFields(p.Boxing)
		if err != nil {
			return Match{}, fmt.Errorf("usersPredictions[%d].predictionsForBoxing: %w", i, err)
		}
		mmaPredictions, err := predictionsFromFields(p.MMA)
		if err != nil {
			return Match{}, fmt.Errorf("usersPredictions[%d].predictionsForMMA: %w", i, err)
		}
		predictions = append(predictions, PlayerPredictions{
			PlayerName: p.PlayerName,
			Boxing:     boxingPredictions,
			MMA:        mmaPredictions,
		})
	}

	return Match{
		ID:          doc.ID,
		ImageURL:    doc.ImageURL,
		Category:    doc.Category,
		FighterA:    doc.FighterA,
		FighterB:    doc.FighterB,
		Name:        doc.Name,
		Description: doc.Description,
		VideoURL:    doc.VideoURL,
		LiveURL:     doc.LiveURL,
		Date:        doc.Date,
		Status:      Status(doc.Status),
		Boxing:      boxing,
		MMA:         mma,
		Predictions: predictions,
		Version:     doc.Version,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func blockDocument(b StatBlock) StatBlockDocument {
	return StatBlockDocument{
		FighterOne: statFields(b.FighterOne),
		FighterTwo: statFields(b.FighterTwo),
	}
}

func blockFromDocument(doc StatBlockDocument) (StatBlock, error) {
	one, err := statsFromFields(doc.FighterOne)
	if err != nil {
		return StatBlock{}, fmt.Errorf("fighterOneStats: %w", err)
	}
	two, err := statsFromFields(doc.FighterTwo)
	if err != nil {
		return StatBlock{}, fmt.Errorf("fighterTwoStats: %w", err)
	}
	return StatBlock{FighterOne: one, FighterTwo: two}, nil
}

func statFields(items []RoundStat) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Fields())
	}
	return out
}

func predictionFields(items []RoundPrediction) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Fields())
	}
	return out
}

func statsFromFields(items []map[string]any) ([]RoundStat, error) {
	out := make([]RoundStat, 0, len(items))
	for i, raw := range items {
		item, err := NewRoundStat(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func predictionsFromFields(items []map[string]any) ([]RoundPrediction, error) {
	out := make([]RoundPrediction, 0, len(items))
	for i, raw := range items {
		item, err := NewRoundPrediction(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
