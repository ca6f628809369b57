/*
validate.go - Input validation

PURPOSE:
  Validates a shift input against the error taxonomy before the engine
  touches any ledger state. Validation is strictly first: a rejected
  submission leaves the week ledger untouched.

TOLERANCE:
  A declared rest duration must equal the explicit window length within
  1e-6 minutes. The comparison uses decimal arithmetic so fractional
  declarations survive the round trip through form parsing.
*/
package shift

import (
	"github.com/shopspring/decimal"
)

// restTolerance is the permitted drift between a declared rest duration
// and the computed window length, in minutes.
var restTolerance = decimal.NewFromFloat(1e-6)

// Validate checks an input against the engine's error taxonomy.
// Returns nil when the input is safe to allocate.
func Validate(in Input, policy Policy) error {
	if !in.End.After(in.Start) {
		return ErrInvalidInterval
	}

	return validateRest(Interval{Start: in.Start, End: in.End}, in.Rest, policy)
}

func validateRest(shift Interval, rest RestSpec, policy Policy) error {
	switch rest.Mode {
	case RestNone, RestAuto:
		// Auto computes its own window from engine parameters; a shift
		// under the threshold simply gets no rest.
		return nil

	case RestCountdown:
		return validateRestDuration(shift, rest, policy)

	case RestWindow:
		if rest.Minutes > 0 && rest.Window == nil {
			return ErrMissingRestTiming
		}
		if rest.Window == nil {
			return nil
		}
		if err := validateRestDuration(shift, rest, policy); err != nil {
			return err
		}
		return validateRestWindow(shift, rest)

	default:
		return &RestSpecError{Reason: "unknown rest mode " + string(rest.Mode), Rest: rest}
	}
}

func validateRestDuration(shift Interval, rest RestSpec, policy Policy) error {
	if rest.Minutes < 0 {
		return &RestSpecError{Reason: "rest minutes must not be negative", Rest: rest}
	}
	if rest.Minutes >= float64(shift.Minutes()) {
		return &RestSpecError{Reason: "rest must be shorter than the shift", Rest: rest}
	}
	if policy.MaxRestMinutes > 0 && rest.Minutes > float64(policy.MaxRestMinutes) {
		return &RestSpecError{Reason: "rest exceeds the configured cap", Rest: rest}
	}
	return nil
}

func validateRestWindow(shift Interval, rest RestSpec) error {
	w := *rest.Window

	if !w.End.After(w.Start) {
		return &RestSpecError{Reason: "rest end must be after rest start", Rest: rest}
	}
	if w.Start.Before(shift.Start) || !w.Start.Before(shift.End) {
		return &RestSpecError{Reason: "rest start outside the shift", Rest: rest}
	}
	if w.End.After(shift.End) {
		return &RestSpecError{Reason: "rest end outside the shift", Rest: rest}
	}

	declared := decimal.NewFromFloat(rest.Minutes)
	actual := decimal.NewFromInt(int64(w.Minutes()))
	if declared.Sub(actual).Abs().GreaterThan(restTolerance) {
		return &RestSpecError{Reason: "declared rest duration does not match the window", Rest: rest}
	}
	return nil
}
