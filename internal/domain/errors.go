package domain

import (
	"errors"
	"fmt"
)

// Common domain errors raised during matching orchestration.
var (
	// ErrInvalidWeights indicates a weight configuration that does not
	// sum to exactly 100 or carries a negative weight.
	ErrInvalidWeights = errors.New("invalid weight configuration")

	// ErrMissingJobOffer indicates that a match request carried no job
	// offer or an offer with neither title nor description.
	ErrMissingJobOffer = errors.New("job offer is required")

	// ErrEmptyCandidates indicates that a match request carried no
	// candidates.
	ErrEmptyCandidates = errors.New("candidate list is empty")

	// ErrEmptyTenderText indicates that a tender analysis request
	// carried no text.
	ErrEmptyTenderText = errors.New("tender text is empty")

	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidOracleResponse indicates an oracle reply that could not
	// be parsed or failed structural validation. Never retried by the
	// component that raises it; the caller decides.
	ErrInvalidOracleResponse = errors.New("invalid oracle response")

	// ErrNoProfiles indicates a coordination run started without any
	// job profiles.
	ErrNoProfiles = errors.New("no job profiles selected")
)

// ValidationError collects boundary validation failures for one entity
// so callers can report every problem at once rather than the first.
type ValidationError struct {
	// Entity names what failed validation, e.g. "match request".
	Entity string

	// Problems lists the individual validation failures.
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("validation failed for %s: %s", e.Entity, e.Problems[0])
	}
	return fmt.Sprintf("validation failed for %s: %v", e.Entity, e.Problems)
}

// Add appends one validation failure.
func (e *ValidationError) Add(msg string) { e.Problems = append(e.Problems, msg) }

// HasProblems reports whether any failure was recorded.
func (e *ValidationError) HasProblems() bool { return len(e.Problems) > 0 }

// NewValidationError creates an empty ValidationError for an entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity}
}

// CoordinationError reports the failure of a multi-profile run,
// identifying which profile aborted the run. Earlier sessions are
// discarded under the fail-fast policy, so the error is the only
// surviving output of the run.
type CoordinationError struct {
	// ProfileID identifies the profile whose matching failed.
	ProfileID string

	// ProfileIndex is the zero-based position of the profile in the run.
	ProfileIndex int

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *CoordinationError) Error() string {
	return fmt.Sprintf("coordination failed at profile %s (index %d): %v", e.ProfileID, e.ProfileIndex, e.Err)
}

// Unwrap returns the underlying failure for errors.Is / errors.As.
func (e *CoordinationError) Unwrap() error { return e.Err }
