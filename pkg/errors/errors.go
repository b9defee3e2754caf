// Package errors provides common domain error types for the simkit core.
//
// This package defines sentinel errors for the two fatal precondition
// conditions a caller can observe, plus the recoverable oracle condition
// that the simulation absorbs internally. Using typed errors enables
// consistent error handling patterns with errors.Is() checks.
//
// Usage:
//
//	import skerrors "github.com/strtupify/simkit/pkg/errors"
//
//	// Return a domain error
//	return nil, skerrors.ErrNoParticipants
//
//	// Check for domain errors
//	if skerrors.IsOracleUnavailable(err) {
//	    // fall back to neutral values
//	}
package errors

import "errors"

// Domain errors - sentinel errors for simulation conditions.
var (
	// ErrNoParticipants indicates a meeting was requested with an empty roster.
	// This is a caller contract breach, not a transient failure.
	ErrNoParticipants = errors.New("no participants")

	// ErrNoWorkItems indicates scheduling was requested with an empty item list.
	ErrNoWorkItems = errors.New("no work items")

	// ErrOracleUnavailable indicates the generative text oracle failed or
	// returned a malformed response. Callers recover with a documented
	// fallback value; this never escapes a meeting turn.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMeetingComplete indicates an advance was requested on a meeting that
	// already reached a terminal outcome.
	ErrMeetingComplete = errors.New("meeting complete")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")
)

// IsNoParticipants reports whether any error in err's chain is ErrNoParticipants.
func IsNoParticipants(err error) bool {
	return errors.Is(err, ErrNoParticipants)
}

// IsNoWorkItems reports whether any error in err's chain is ErrNoWorkItems.
func IsNoWorkItems(err error) bool {
	return errors.Is(err, ErrNoWorkItems)
}

// IsOracleUnavailable reports whether any error in err's chain is ErrOracleUnavailable.
func IsOracleUnavailable(err error) bool {
	return errors.Is(err, ErrOracleUnavailable)
}

// IsMeetingComplete reports whether any error in err's chain is ErrMeetingComplete.
func IsMeetingComplete(err error) bool {
	return errors.Is(err, ErrMeetingComplete)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
