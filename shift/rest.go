/*
rest.go - Rest removal policies

PURPOSE:
  Subtracts a rest period from the segment list before classification.
  Three policies are supported because the surrounding forms evolved
  through all of them:

  Countdown:  Shrink segments from the end until the declared minutes are
              exhausted. Approximates "rest happens near the end" without
              an exact window.
  Window:     Subtract an explicit rest interval. Segments are trimmed,
              split in two, or dropped depending on the overlap.
  Auto:       Compute a window of Duration minutes at the shift midpoint
              (clamped to shift bounds) when the shift lasts at least
              Threshold minutes, then subtract it like Window.

PURITY:
  Every policy returns a fresh segment slice. Input segments are never
  mutated after creation.

SEE ALSO:
  - validate.go: Rest spec validation (runs before removal)
  - engine.go: Calls Apply between segmentation and allocation
*/
package shift

import (
	"math"
	"time"
)

// =============================================================================
// REST SPEC
// =============================================================================

type RestMode string

const (
	RestNone      RestMode = "none"
	RestCountdown RestMode = "countdown"
	RestWindow    RestMode = "window"
	RestAuto      RestMode = "auto"
)

// RestSpec describes the rest to deduct from a shift.
type RestSpec struct {
	Mode RestMode

	// Minutes is the declared rest duration. For Window mode it must match
	// the window length within tolerance; for Countdown it is the budget.
	Minutes float64

	// Window is the explicit rest interval (Window mode only).
	Window *Interval

	// Threshold and Duration parameterize Auto mode: shifts of at least
	// Threshold minutes get a Duration-minute rest at their midpoint.
	Threshold int
	Duration  int
}

// NoRest is the zero deduction spec.
func NoRest() RestSpec { return RestSpec{Mode: RestNone} }

// CountdownRest deducts minutes from the tail of the shift.
func CountdownRest(minutes int) RestSpec {
	return RestSpec{Mode: RestCountdown, Minutes: float64(minutes)}
}

// WindowRest deducts an explicit window with a declared duration.
func WindowRest(window Interval, declaredMinutes float64) RestSpec {
	w := window
	return RestSpec{Mode: RestWindow, Minutes: declaredMinutes, Window: &w}
}

// AutoRest inserts a midpoint rest for sufficiently long shifts.
func AutoRest(thresholdMinutes, durationMinutes int) RestSpec {
	return RestSpec{Mode: RestAuto, Threshold: thresholdMinutes, Duration: durationMinutes}
}

// wholeMinutes rounds the declared duration to engine resolution.
func (r RestSpec) wholeMinutes() int {
	return int(math.Round(r.Minutes))
}

// =============================================================================
// REST REMOVAL
// =============================================================================

// Apply removes the rest described by spec from the segments of shift.
// The spec must already be validated; Apply never fails.
func Apply(shift Interval, segments []Segment, spec RestSpec) []Segment {
	switch spec.Mode {
	case RestCountdown:
		return applyCountdown(segments, spec.wholeMinutes())
	case RestWindow:
		if spec.Window == nil {
			return segments
		}
		return applyWindow(segments, *spec.Window)
	case RestAuto:
		window := autoWindow(shift, spec.Threshold, spec.Duration)
		if window == nil {
			return segments
		}
		return applyWindow(segments, *window)
	default:
		return segments
	}
}

// applyCountdown shrinks segments from the last one backwards until the
// rest budget is exhausted. Emptied segments are dropped.
func applyCountdown(segments []Segment, restMinutes int) []Segment {
	adjusted := make([]Segment, len(segments))
	copy(adjusted, segments)

	remaining := restMinutes
	for i := len(adjusted) - 1; i >= 0 && remaining > 0; i-- {
		seg := adjusted[i]
		duration := seg.Minutes()
		deduction := duration
		if remaining < deduction {
			deduction = remaining
		}
		seg.End = seg.End.Add(-time.Duration(deduction) * time.Minute)
		remaining -= deduction

		if !seg.End.After(seg.Start) {
			adjusted = append(adjusted[:i], adjusted[i+1:]...)
		} else {
			adjusted[i] = seg
		}
	}
	return adjusted
}

// applyWindow subtracts the rest interval from every segment:
// no overlap keeps the segment, partial overlap trims it, a strictly
// interior window splits it, and full containment drops it.
func applyWindow(segments []Segment, rest Interval) []Segment {
	var out []Segment
	for _, seg := range segments {
		if !rest.Start.Before(seg.End) || !rest.End.After(seg.Start) {
			out = append(out, seg)
			continue
		}

		if rest.Start.After(seg.Start) {
			out = append(out, Segment{Interval{Start: seg.Start, End: rest.Start}})
		}
		if rest.End.Before(seg.End) {
			out = append(out, Segment{Interval{Start: rest.End, End: seg.End}})
		}
		// Both conditions false: segment fully inside the rest window, dropped.
	}
	return out
}

// autoWindow computes the midpoint rest window for Auto mode, clamped so it
// stays within the shift. Returns nil when the shift is under the threshold.
func autoWindow(shift Interval, threshold, duration int) *Interval {
	total := shift.Minutes()
	if threshold <= 0 || duration <= 0 || total < threshold {
		return nil
	}
	if duration >= total {
		duration = total
	}

	// Center the window on the midpoint at whole-minute resolution. The
	// offset is non-negative once duration is capped, so the window never
	// needs clamping past either bound.
	offset := (total - duration) / 2
	start := shift.Start.Add(time.Duration(offset) * time.Minute)
	end := start.Add(time.Duration(duration) * time.Minute)
	return &Interval{Start: start, End: end}
}
