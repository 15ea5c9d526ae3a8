// Package apperror defines the sentinel errors shared across layers.
// Handlers map them onto HTTP statuses; services wrap them with context.
package apperror

import "errors"

var (
	// Validation: recoverable client errors, no partial writes.
	ErrValidation    = errors.New("validation failed")
	ErrMarkupTooHigh = errors.New("asking price exceeds maximum markup")
	ErrPriceOverTier = errors.New("asking price exceeds seller tier ceiling")
	ErrQuotaExceeded = errors.New("active listing quota exceeded")
	ErrOversell      = errors.New("requested quantity exceeds availability")
	ErrProofsMissing = errors.New("required proof types missing")

	// State conflicts: the transition is not legal from the current status,
	// or was lost to a concurrent writer.
	ErrStatusConflict = errors.New("status conflict")

	// Actor lacks the role required for this transition.
	ErrForbidden = errors.New("actor not permitted for this action")

	ErrListingNotFound      = errors.New("listing not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrVerificationNotFound = errors.New("verification request not found")

	// External dependency failed; no state transition was committed.
	ErrExternalDependency = errors.New("external dependency failure")

	ErrRateLimited = errors.New("rate limit exceeded")
)
