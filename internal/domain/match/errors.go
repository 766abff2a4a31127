package match

import "errors"

var (
	ErrEmptyBatch        = errors.New("predictions batch is empty")
	ErrUnknownDiscipline = errors.New("unknown discipline")
	ErrInvalidRecord     = errors.New("invalid round record")
	ErrUnknownStatus     = errors.New("unknown match status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrVersionConflict   = errors.New("match version conflict")
)
