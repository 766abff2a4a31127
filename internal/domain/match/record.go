package match

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// StatRoundKey is the flat JSON key carrying the round of a RoundStat.
	StatRoundKey = "roundNumber"
	// PredictionRoundKey is the flat JSON key carrying the round of a RoundPrediction.
	PredictionRoundKey = "playerRound"
)

// Known counter names. Unknown names are accepted and kept as given.
var (
	BoxingStatFields = []string{"HP", "BP", "TP", "RW", "RL", "KO", "SP"}
	MMAStatFields    = []string{"ST", "KI", "KN", "El", "RW", "RL", "KO", "SP"}

	BoxingPredictionFields = []string{
		"hpPrediction1", "hpPrediction2",
		"bpPrediction1", "bpPrediction2",
		"tpPrediction1", "tpPrediction2",
		"rwPrediction1", "rwPrediction2",
		"koPrediction1", "koPrediction2",
	}
	MMAPredictionFields = []string{
		"stPrediction1", "stPrediction2",
		"kiPrediction1", "kiPrediction2",
		"knPrediction1", "knPrediction2",
		"elPrediction1", "elPrediction2",
		"spPrediction1", "spPrediction2",
		"rwPrediction1", "rwPrediction2",
	}
)

// NewRoundStat builds a RoundStat from a decoded flat JSON object.
func NewRoundStat(raw map[string]any) (RoundStat, error) {
	round, values, err := decodeOpenRecord(raw, StatRoundKey)
	if err != nil {
		return RoundStat{}, err
	}
	return RoundStat{Round: round, Values: values}, nil
}

// NewRoundPrediction builds a RoundPrediction from a decoded flat JSON object.
func NewRoundPrediction(raw map[string]any) (RoundPrediction, error) {
	round, values, err := decodeOpenRecord(raw, PredictionRoundKey)
	if err != nil {
		return RoundPrediction{}, err
	}
	return RoundPrediction{Round: round, Values: values}, nil
}

// Fields flattens the record back into its wire shape.
func (r RoundStat) Fields() map[string]any {
	return flatten(StatRoundKey, r.Round, r.Values)
}

// Fields flattens the record back into its wire shape.
func (r RoundPrediction) Fields() map[string]any {
	return flatten(PredictionRoundKey, r.Round, r.Values)
}

func flatten(roundKey string, round int, values map[string]float64) map[string]any {
	out := make(map[string]any, len(values)+1)
	for k, v := range values {
		out[k] = v
	}
	out[roundKey] = round
	return out
}

func decodeOpenRecord(raw map[string]any, roundKey string) (int, map[string]float64, error) {
	if raw == nil {
		return 0, nil, fmt.Errorf("%w: record is required", ErrInvalidRecord)
	}
	rawRound, ok := raw[roundKey]
	if !ok || rawRound == nil {
		return 0, nil, fmt.Errorf("%w: %s is required", ErrInvalidRecord, roundKey)
	}
	round, err := parseRound(rawRound)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, roundKey, err)
	}

	values := make(map[string]float64, len(raw))
	for key, value := range raw {
		if key == roundKey || value == nil {
			continue
		}
		number, err := parseNumber(value)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: field %s: %v", ErrInvalidRecord, key, err)
		}
		values[key] = number
	}
	return round, values, nil
}

func parseRound(value any) (int, error) {
	number, err := parseNumber(value)
	if err != nil {
		return 0, err
	}
	if number != math.Trunc(number) {
		return 0, fmt.Errorf("must be an integer, got %v", number)
	}
	if number > math.MaxInt32 || number < math.MinInt32 {
		return 0, fmt.Errorf("out of range")
	}
	return int(number), nil
}

func parseNumber(value any) (float64, error) {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case float32:
		number = float64(v)
	case int:
		number = float64(v)
	case int32:
		number = float64(v)
	case int64:
		number = float64(v)
	case uint64:
		number = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		number = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return number, nil
}
