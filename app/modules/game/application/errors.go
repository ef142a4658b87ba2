package gameservice

import (
	"errors"
	"fmt"

	gamedb "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/repositories"
)

var (
	// ErrAccessDenied indicates storage refused the caller. Not retryable.
	ErrAccessDenied = errors.New("access denied")

	// ErrTransportFailure indicates storage could not be read or written.
	// Callers may retry; the service never does.
	ErrTransportFailure = errors.New("transport failure")

	// ErrSaveFailed wraps every failed write.
	ErrSaveFailed = errors.New("save failed")

	// ErrMalformedInput indicates a request the summary builder cannot accept.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidLimit indicates a read limit above the configured maximum.
	ErrInvalidLimit = errors.New("invalid limit")
)

// storeError maps a repository error onto the service taxonomy. Anything that
// is not an explicit refusal counts as a transport failure.
func storeError(err error) error {
	if errors.Is(err, gamedb.ErrAccessDenied) {
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}
	return fmt.Errorf("%w: %w", ErrTransportFailure, err)
}

func saveError(err error) error {
	return fmt.Errorf("%w: %w", ErrSaveFailed, storeError(err))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
