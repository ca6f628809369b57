package shift_test

import (
	"reflect"
	"testing"

	"github.com/turno/shift-engine/shift"
)

func newTestEngine() *shift.Engine {
	return shift.NewEngine(shift.DefaultPolicy(), nil)
}

// =============================================================================
// BASELINE CLASSIFICATION
// =============================================================================

func TestCalculate_PlainDiurnalWeekday(t *testing.T) {
	// GIVEN: A Monday shift of exactly 8 diurnal hours with no rest
	// THEN: Every minute is ordinary

	e := newTestEngine()
	result, err := e.Calculate(shift.Input{
		Start: mar2025(10, 8, 0),
		End:   mar2025(10, 16, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{Ordinary: 480}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
	if got := e.Ledger().Consumed(shift.WeekKey("2025-W11")); got != 480 {
		t.Errorf("week consumed = %d, want 480", got)
	}
}

func TestCalculate_DiurnalOverflowBecomesHED(t *testing.T) {
	// GIVEN: A weekday shift of 11 hours with a 60-minute countdown rest
	// THEN: 480 ordinary minutes, the remaining 120 are HED

	e := newTestEngine()
	result, err := e.Calculate(shift.Input{
		Start: mar2025(10, 8, 0),
		End:   mar2025(10, 19, 0),
		Rest:  shift.CountdownRest(60),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{Ordinary: 480, HED: 120}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

func TestCalculate_OvernightSundayShift(t *testing.T) {
	// GIVEN: Sunday 19:00 to Monday 05:00, day type resolved per segment
	// THEN: Sunday diurnal => HEDF, Sunday nocturnal => HEN,
	//       Monday nocturnal => RN; 600 minutes conserved across both days

	e := newTestEngine()
	result, err := e.Calculate(shift.Input{
		Start: mar2025(9, 19, 0),
		End:   mar2025(10, 5, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{HEDF: 120, HEN: 180, RN: 300}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
	if result.Totals.Total() != 600 {
		t.Errorf("total = %d minutes, want 600", result.Totals.Total())
	}

	sunday := result.PerDay[shift.DayKey("2025-03-09")]
	if (sunday != shift.Buckets{HEDF: 120, HEN: 180}) {
		t.Errorf("Sunday buckets = %+v", sunday)
	}
	monday := result.PerDay[shift.DayKey("2025-03-10")]
	if (monday != shift.Buckets{RN: 300}) {
		t.Errorf("Monday buckets = %+v", monday)
	}
	if result.DayType != shift.DaySunday {
		t.Errorf("effective day type = %s, want dominical", result.DayType)
	}
}

func TestCalculate_FridayOvernightNightSurcharge(t *testing.T) {
	// GIVEN: Friday 18:00 to Saturday 05:00 with no rest
	// THEN: Diurnal minutes are ordinary, all nocturnal minutes fit as RN

	e := newTestEngine()
	result, err := e.Calculate(shift.Input{
		Start: mar2025(14, 18, 0),
		End:   mar2025(15, 5, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{Ordinary: 180, RN: 480}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

// =============================================================================
// WEEKLY ALLOWANCE AND RECLASSIFICATION
// =============================================================================

func TestCalculate_ExhaustedWeekPushesNightToHEN(t *testing.T) {
	// GIVEN: A week whose 2640-minute allowance is fully consumed
	// WHEN: A purely nocturnal weekday shift arrives with no ordinary
	//       minutes booked that day
	// THEN: Nothing can be reclassified; every minute is HEN

	e := newTestEngine()
	e.Ledger().Consume(shift.WeekKey("2025-W11"), 2640)

	result, err := e.Calculate(shift.Input{
		Start: mar2025(11, 21, 0),
		End:   mar2025(11, 23, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{HEN: 120}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

func TestCalculate_NightReclassifiesSameDayOrdinary(t *testing.T) {
	// GIVEN: A week with only 100 ordinary minutes left
	// WHEN: A 14:00-23:00 shift books 100 diurnal ordinary minutes and then
	//       hits the nocturnal window with the week exhausted
	// THEN: The day's ordinary minutes convert to HED, freeing the weekly
	//       room for the nocturnal segment as RN

	e := newTestEngine()
	week := shift.WeekKey("2025-W11")
	e.Ledger().Consume(week, 2540)

	result, err := e.Calculate(shift.Input{
		Start: mar2025(10, 14, 0),
		End:   mar2025(10, 23, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{HED: 420, RN: 100, HEN: 20}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
	if result.Totals.Total() != 540 {
		t.Errorf("total = %d minutes, want 540", result.Totals.Total())
	}
	// 100 diurnal minutes were reclaimed and re-consumed by the night.
	if got := e.Ledger().Consumed(week); got != 2640 {
		t.Errorf("week consumed = %d, want 2640", got)
	}
}

func TestCalculate_WeekKeyOverrideSharesBudget(t *testing.T) {
	// GIVEN: Two shifts in different ISO weeks sharing a week key override
	// THEN: They draw from the same weekly bucket

	e := newTestEngine()
	for _, day := range []int{10, 17} {
		_, err := e.Calculate(shift.Input{
			Start:           mar2025(day, 8, 0),
			End:             mar2025(day, 16, 0),
			Rest:            shift.NoRest(),
			WeekKeyOverride: "pay-cycle-7",
		})
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
	}

	if got := e.Ledger().Consumed(shift.WeekKey("pay-cycle-7")); got != 960 {
		t.Errorf("override bucket consumed = %d, want 960", got)
	}
	if got := e.Ledger().Consumed(shift.WeekKey("2025-W11")); got != 0 {
		t.Errorf("calendar bucket consumed = %d, want 0", got)
	}
}

// =============================================================================
// POLICY VARIANTS
// =============================================================================

func TestCalculate_HolidayDiurnalDayBudgetPolicy(t *testing.T) {
	// GIVEN: A policy letting the day budget absorb holiday diurnal minutes
	// THEN: A 10-hour Sunday day shift books 480 ordinary and 120 HEDF

	policy := shift.DefaultPolicy()
	policy.HolidayDiurnalUsesDayBudget = true
	e := shift.NewEngine(policy, nil)

	result, err := e.Calculate(shift.Input{
		Start: mar2025(9, 8, 0),
		End:   mar2025(9, 18, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{Ordinary: 480, HEDF: 120}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

func TestCalculate_HolidayNocturnalSurchargePolicy(t *testing.T) {
	// GIVEN: A policy classifying holiday nocturnal minutes as RN
	// THEN: A late Sunday hour books RN, not HEN

	policy := shift.DefaultPolicy()
	policy.HolidayNocturnal = shift.CategoryNightSurcharge
	e := shift.NewEngine(policy, nil)

	result, err := e.Calculate(shift.Input{
		Start: mar2025(9, 22, 0),
		End:   mar2025(9, 23, 0),
		Rest:  shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{RN: 60}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

func TestCalculate_DayTypeOverride(t *testing.T) {
	// GIVEN: A Sunday shift forced to ordinario
	// THEN: Sunday rules do not apply; nocturnal minutes become RN

	e := newTestEngine()
	result, err := e.Calculate(shift.Input{
		Start:   mar2025(9, 21, 0),
		End:     mar2025(9, 23, 0),
		DayType: shift.DayTypeOverride(shift.DayOrdinary),
		Rest:    shift.NoRest(),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	want := shift.Buckets{RN: 120}
	if result.Totals != want {
		t.Errorf("totals = %+v, want %+v", result.Totals, want)
	}
}

// =============================================================================
// PREVIEW, RESET, AND FAILURE ISOLATION
// =============================================================================

func TestPreview_DoesNotCommitConsumption(t *testing.T) {
	// GIVEN: A fresh engine
	// WHEN: The same input is previewed and then calculated
	// THEN: The preview leaves the ledger untouched and both results match

	e := newTestEngine()
	in := shift.Input{
		Start: mar2025(10, 8, 0),
		End:   mar2025(10, 19, 0),
		Rest:  shift.CountdownRest(60),
	}

	previewed, err := e.Preview(in)
	if err != nil {
		t.Fatalf("Preview() error: %v", err)
	}
	if got := e.Ledger().Consumed(shift.WeekKey("2025-W11")); got != 0 {
		t.Fatalf("preview consumed %d minutes", got)
	}

	committed, err := e.Calculate(in)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if !reflect.DeepEqual(previewed, committed) {
		t.Errorf("preview %+v differs from calculation %+v", previewed, committed)
	}
}

func TestCalculate_IdempotentAfterReset(t *testing.T) {
	// GIVEN: A sequence of shifts that exhausts the weekly allowance
	// WHEN: The engine is reset and the sequence replayed
	// THEN: The results are identical run to run

	inputs := []shift.Input{
		{Start: mar2025(10, 8, 0), End: mar2025(10, 16, 0), Rest: shift.NoRest()},
		{Start: mar2025(11, 8, 0), End: mar2025(11, 16, 0), Rest: shift.NoRest()},
		{Start: mar2025(12, 14, 0), End: mar2025(12, 23, 0), Rest: shift.NoRest()},
	}

	e := newTestEngine()
	replay := func() []*shift.Result {
		var out []*shift.Result
		for _, in := range inputs {
			r, err := e.Calculate(in)
			if err != nil {
				t.Fatalf("Calculate() error: %v", err)
			}
			out = append(out, r)
		}
		return out
	}

	first := replay()
	e.Reset()
	second := replay()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("replay after reset diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCalculate_ValidationFailureLeavesLedgerUntouched(t *testing.T) {
	// GIVEN: An input with a rest longer than the shift
	// THEN: Calculate rejects it before consuming any weekly allowance

	e := newTestEngine()
	_, err := e.Calculate(shift.Input{
		Start: mar2025(10, 8, 0),
		End:   mar2025(10, 10, 0),
		Rest:  shift.CountdownRest(180),
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if got := e.Ledger().Consumed(shift.WeekKey("2025-W11")); got != 0 {
		t.Errorf("rejected input consumed %d minutes", got)
	}
}
