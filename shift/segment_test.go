package shift_test

import (
	"testing"
	"time"

	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// mar2025 returns a March 2025 instant; the 9th is a Sunday.
func mar2025(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, time.UTC)
}

func iv(start, end time.Time) shift.Interval {
	return shift.Interval{Start: start, End: end}
}

func totalMinutes(segments []shift.Segment) int {
	total := 0
	for _, s := range segments {
		total += s.Minutes()
	}
	return total
}

// =============================================================================
// SEGMENTATION TESTS
// =============================================================================

func TestSplit_Conservation(t *testing.T) {
	// GIVEN: A set of intervals crossing various boundaries
	// THEN: Segment durations always sum to the interval duration

	intervals := []shift.Interval{
		iv(mar2025(10, 8, 0), mar2025(10, 16, 0)),   // inside diurnal window
		iv(mar2025(10, 22, 0), mar2025(10, 23, 30)), // inside nocturnal window
		iv(mar2025(9, 19, 0), mar2025(10, 5, 0)),    // overnight, three boundaries
		iv(mar2025(10, 5, 30), mar2025(10, 21, 30)), // crosses 06:00 and 21:00
		iv(mar2025(10, 0, 0), mar2025(12, 0, 0)),    // two full days
		iv(mar2025(10, 13, 59), mar2025(10, 14, 0)), // one minute
	}

	for _, in := range intervals {
		segments := shift.Split(in)
		if got, want := totalMinutes(segments), in.Minutes(); got != want {
			t.Errorf("Split(%v): total %d minutes, want %d", in, got, want)
		}
	}
}

func TestSplit_NoSegmentCrossesBoundaries(t *testing.T) {
	// GIVEN: An interval spanning several days
	// THEN: No segment spans 06:00, 21:00, or midnight

	segments := shift.Split(iv(mar2025(9, 3, 15), mar2025(11, 22, 45)))

	for _, s := range segments {
		if !shift.DayKeyOf(s.Start).Date().Equal(shift.DayKeyOf(s.End.Add(-time.Minute)).Date()) {
			t.Errorf("segment %v crosses midnight", s.Interval)
		}
		startMin := s.Start.Hour()*60 + s.Start.Minute()
		endMin := s.End.Hour()*60 + s.End.Minute()
		if endMin == 0 {
			endMin = 24 * 60
		}
		for _, b := range []int{shift.DiurnalStartMinute, shift.DiurnalEndMinute} {
			if startMin < b && endMin > b {
				t.Errorf("segment %v crosses clock boundary %02d:00", s.Interval, b/60)
			}
		}
	}
}

func TestSplit_GaplessAndOrdered(t *testing.T) {
	// GIVEN: Any interval
	// THEN: Segments are contiguous, ordered, and cover [start, end)

	in := iv(mar2025(9, 19, 0), mar2025(10, 5, 0))
	segments := shift.Split(in)

	if len(segments) == 0 {
		t.Fatal("expected segments")
	}
	if !segments[0].Start.Equal(in.Start) {
		t.Errorf("first segment starts at %v, want %v", segments[0].Start, in.Start)
	}
	if !segments[len(segments)-1].End.Equal(in.End) {
		t.Errorf("last segment ends at %v, want %v", segments[len(segments)-1].End, in.End)
	}
	for i := 1; i < len(segments); i++ {
		if !segments[i].Start.Equal(segments[i-1].End) {
			t.Errorf("gap between segment %d and %d", i-1, i)
		}
	}
}

func TestSplit_SingleZoneIntervalYieldsOneSegment(t *testing.T) {
	// GIVEN: An interval wholly inside one diurnal window
	// THEN: Exactly one segment comes back

	segments := shift.Split(iv(mar2025(10, 9, 0), mar2025(10, 17, 0)))
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
}

func TestSplit_OvernightSundayShift(t *testing.T) {
	// GIVEN: Sunday 19:00 to Monday 05:00
	// THEN: Three segments: 19-21, 21-24, 00-05

	segments := shift.Split(iv(mar2025(9, 19, 0), mar2025(10, 5, 0)))
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	wantMinutes := []int{120, 180, 300}
	wantDiurnal := []bool{true, false, false}
	for i, s := range segments {
		if s.Minutes() != wantMinutes[i] {
			t.Errorf("segment %d: %d minutes, want %d", i, s.Minutes(), wantMinutes[i])
		}
		if s.Diurnal() != wantDiurnal[i] {
			t.Errorf("segment %d: diurnal=%v, want %v", i, s.Diurnal(), wantDiurnal[i])
		}
	}
}

func TestSegment_DiurnalBoundaryConvention(t *testing.T) {
	// GIVEN: Segments starting exactly on the clock boundaries
	// THEN: [06:00, 21:00) is diurnal; 21:00 itself is nocturnal

	six := shift.Segment{Interval: iv(mar2025(10, 6, 0), mar2025(10, 7, 0))}
	if !six.Diurnal() {
		t.Error("segment starting at 06:00 should be diurnal")
	}

	nine := shift.Segment{Interval: iv(mar2025(10, 21, 0), mar2025(10, 22, 0))}
	if nine.Diurnal() {
		t.Error("segment starting at 21:00 should be nocturnal")
	}

	beforeSix := shift.Segment{Interval: iv(mar2025(10, 5, 0), mar2025(10, 6, 0))}
	if beforeSix.Diurnal() {
		t.Error("segment starting at 05:00 should be nocturnal")
	}
}

func TestISOWeekKey(t *testing.T) {
	// Sunday March 9 2025 closes ISO week 10; Monday opens week 11.
	if got := shift.ISOWeekKey(mar2025(9, 12, 0)); got != "2025-W10" {
		t.Errorf("week of Sunday Mar 9 = %s, want 2025-W10", got)
	}
	if got := shift.ISOWeekKey(mar2025(10, 0, 0)); got != "2025-W11" {
		t.Errorf("week of Monday Mar 10 = %s, want 2025-W11", got)
	}
}
