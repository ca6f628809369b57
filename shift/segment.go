/*
segment.go - Boundary segmentation

PURPOSE:
  Splits a raw work interval into segments that never cross a diurnal
  boundary (06:00, 21:00) or a calendar-day boundary (midnight). Every
  later stage relies on segments being single-zone and single-day.

ALGORITHM:
  Walk a cursor from the interval start. At each step the next boundary
  strictly after the cursor is the minimum of: same-day 06:00, same-day
  21:00, next midnight, next-day 06:00. Emit [cursor, min(boundary, end))
  and advance. The walk is a pure function of the input interval.

INVARIANTS:
  - Output is ordered, gapless and non-overlapping
  - Sum of segment durations equals the interval duration
  - An interval wholly inside one zone yields exactly one segment

SEE ALSO:
  - rest.go: Consumes the segment list
  - engine.go: Classifies each segment
*/
package shift

import "time"

// Split produces the boundary-respecting segments covering [start, end).
func Split(iv Interval) []Segment {
	var segments []Segment
	cursor := iv.Start
	for cursor.Before(iv.End) {
		boundary := nextBoundary(cursor)
		segEnd := boundary
		if iv.End.Before(boundary) {
			segEnd = iv.End
		}
		segments = append(segments, Segment{Interval{Start: cursor, End: segEnd}})
		cursor = segEnd
	}
	return segments
}

// nextBoundary returns the earliest clock boundary strictly after t among
// same-day 06:00, same-day 21:00, next midnight, and next-day 06:00.
// The last candidate guarantees a boundary exists for any t.
func nextBoundary(t time.Time) time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	candidates := []time.Time{
		time.Date(y, m, d, 6, 0, 0, 0, loc),
		time.Date(y, m, d, 21, 0, 0, 0, loc),
		time.Date(y, m, d+1, 0, 0, 0, 0, loc),
		time.Date(y, m, d+1, 6, 0, 0, 0, loc),
	}

	var best time.Time
	for _, c := range candidates {
		if !c.After(t) {
			continue
		}
		if best.IsZero() || c.Before(best) {
			best = c
		}
	}
	return best
}
