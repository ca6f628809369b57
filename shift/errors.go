/*
errors.go - Centralized error types for the shift engine

PURPOSE:
  All engine error types in one place. The collaborator layer (api/) maps
  these to HTTP status codes; the engine itself only ever fails during
  validation, which runs before any ledger mutation. A rejected input is
  therefore always side-effect-free.

ERROR CATEGORIES:
  1. Interval errors - end not after start
  2. Rest errors     - malformed or out-of-bounds rest specifications
  3. Timing errors   - rest declared without the timing its policy needs

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, shift.ErrInvalidRestSpec) { ... }
*/
package shift

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when a shift ends at or before its start.
	ErrInvalidInterval = errors.New("invalid interval: end must be after start")

	// ErrInvalidRestSpec is returned for malformed rest specifications:
	// rest at least as long as the shift, rest over the configured cap,
	// a window outside the shift, or a declared duration that does not
	// match the window length.
	ErrInvalidRestSpec = errors.New("invalid rest specification")

	// ErrMissingRestTiming is returned when rest minutes are declared but
	// the active policy requires timing information that was not supplied.
	ErrMissingRestTiming = errors.New("rest declared without timing information")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RestSpecError details why a rest specification was rejected.
type RestSpecError struct {
	Reason string
	Rest   RestSpec
}

func (e *RestSpecError) Error() string {
	return fmt.Sprintf("invalid rest specification: %s", e.Reason)
}

func (e *RestSpecError) Unwrap() error { return ErrInvalidRestSpec }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input.
// Every engine error currently is; the helper exists so collaborators do
// not hard-code that assumption.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidRestSpec) ||
		errors.Is(err, ErrMissingRestTiming)
}
