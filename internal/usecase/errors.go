package usecase

import "errors"

// Sentinels returned by the services. The HTTP layer maps each onto a status
// code; anything else is treated as a store failure.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var callerErrors = []error{ErrInvalidInput, ErrNotFound, ErrUnauthorized, ErrConflict}

// isCallerError reports whether err was caused by the request rather than by
// the service or one of its dependencies.
func isCallerError(err error) bool {
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
