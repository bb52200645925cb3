// Package services defines the business logic for analysis generation,
// fixture lookups, and agent runs. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFixtureID is returned when a generation request carries no
	// usable fixture identifier after trimming.
	ErrMissingFixtureID = errors.New("fixture id is required")

	// ErrGenerationInProgress is returned when the per-identity lock is
	// already held: the caller has another generation running and must wait
	// for it to finish rather than retry.
	ErrGenerationInProgress = errors.New("generation already in progress for this identity")

	// ErrDailyLimitExceeded is returned when the identity has used up its
	// daily budget for the requested scope.
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")

	// ErrGenerationTimeout is returned when the upstream provider did not
	// produce a result within the configured deadline.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrEmptyAnalysis is returned when the provider answered successfully
	// but produced no usable text.
	ErrEmptyAnalysis = errors.New("provider generated an empty analysis")

	// ErrVPNBlocked is returned when the optional address check classifies
	// an anonymous caller's address as a proxy/VPN exit.
	ErrVPNBlocked = errors.New("address classified as proxy")

	// ErrInvalidEmail is returned when an agent run request carries an
	// address that cannot receive the report.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidDate is returned when a fixture lookup date is not a valid
	// YYYY-MM-DD value.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// DailyLimitError carries the configured ceiling alongside
// ErrDailyLimitExceeded so handlers can render the number in user-facing
// copy without knowing the concrete service type. errors.Is against the
// sentinel keeps working through Unwrap.
type DailyLimitError struct {
	Limit int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily limit of %d exceeded", e.Limit)
}

func (e *DailyLimitError) Unwrap() error { return ErrDailyLimitExceeded }
