/*
engine.go - Category allocation

PURPOSE:
  Drives one allocation run: segment the shift, remove rest, then walk
  the segments chronologically assigning every minute to exactly one of
  the five categories while consuming the daily and weekly ordinary
  allowances.

ALLOCATION RULES (per segment):
  ordinary day, diurnal:    usable minutes => ordinary, rest => HED
  ordinary day, nocturnal:  usable minutes => RN, rest => HEN
  holiday day,  diurnal:    HEDF (optionally day-budget residual => ordinary)
  holiday day,  nocturnal:  HEN or RN, per policy

  "usable" is min(segment minutes, remaining day budget, remaining week
  budget); every usable minute consumes both budgets.

RECLASSIFICATION:
  Night hours take priority for the weekly ordinary allowance. When a
  nocturnal ordinary-day segment cannot fit in the remaining budgets, the
  current day's already-booked diurnal ordinary minutes yield: a bounded
  transfer converts them to HED and returns the room to both ledgers
  before the nocturnal segment is classified. The transfer is clamped by
  the day's ordinary-so-far, the minutes still needed, and the week's
  consumed total, so no ledger invariant can break.

CONCURRENCY:
  The only shared mutable state is the WeekLedger. A mutex serializes
  whole allocation runs: one transaction at a time per engine.
*/
package shift

import (
	"sync"
	"time"
)

// =============================================================================
// INPUT
// =============================================================================

// Input is the engine's submission contract.
type Input struct {
	Start           time.Time
	End             time.Time
	DayType         DayTypeOverride // "auto" resolves per segment weekday
	Rest            RestSpec
	WeekKeyOverride string // empty means ISO week of each segment's day
}

func (in Input) interval() Interval { return Interval{Start: in.Start, End: in.End} }

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns a classification policy and a week ledger and turns shift
// inputs into per-day category totals.
type Engine struct {
	mu     sync.Mutex
	policy Policy
	ledger *WeekLedger
}

// NewEngine creates an engine. A nil ledger gets a fresh one sized from
// the policy's weekly allowance.
func NewEngine(policy Policy, ledger *WeekLedger) *Engine {
	if ledger == nil {
		ledger = NewWeekLedger(policy.WeeklyOrdinary)
	}
	return &Engine{policy: policy, ledger: ledger}
}

// Policy returns the engine's classification policy.
func (e *Engine) Policy() Policy { return e.policy }

// Ledger exposes the week ledger for collaborators that report remaining
// allowance. Mutation outside the engine is the caller's responsibility.
func (e *Engine) Ledger() *WeekLedger { return e.ledger }

// Calculate validates the input and runs one allocation, committing the
// ordinary consumption to the week ledger. Validation failures leave the
// ledger untouched.
func (e *Engine) Calculate(in Input) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := Validate(in, e.policy); err != nil {
		return nil, err
	}
	return e.allocate(in), nil
}

// Preview runs an allocation without committing weekly consumption.
// Used for the "what would this shift classify as" flow.
func (e *Engine) Preview(in Input) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := Validate(in, e.policy); err != nil {
		return nil, err
	}

	snap := e.ledger.Snapshot()
	result := e.allocate(in)
	e.ledger.Restore(snap)
	return result, nil
}

// Reset clears all weekly ledger state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset()
}

// =============================================================================
// ALLOCATION
// =============================================================================

// run holds the mutable accumulators of one allocation.
type run struct {
	policy  Policy
	ledger  *WeekLedger
	budgets *dayBudget
	perDay  map[DayKey]*Buckets
	totals  Buckets
}

func (e *Engine) allocate(in Input) *Result {
	shiftIv := in.interval()
	segments := Split(shiftIv)
	segments = Apply(shiftIv, segments, in.Rest)

	r := &run{
		policy:  e.policy,
		ledger:  e.ledger,
		budgets: newDayBudget(e.policy.DailyOrdinary),
		perDay:  make(map[DayKey]*Buckets),
	}

	for _, seg := range segments {
		r.allocateSegment(seg, in)
	}

	perDay := make(map[DayKey]Buckets, len(r.perDay))
	for k, v := range r.perDay {
		perDay[k] = *v
	}
	return &Result{
		Start:   in.Start,
		End:     in.End,
		DayType: in.DayType.Resolve(in.Start),
		PerDay:  perDay,
		Totals:  r.totals,
	}
}

func (r *run) allocateSegment(seg Segment, in Input) {
	minutes := seg.Minutes()
	if minutes <= 0 {
		// Rest removal may leave an empty tail; skip, never fail.
		return
	}

	day := DayKeyOf(seg.Start)
	week := WeekKey(in.WeekKeyOverride)
	if week == "" {
		week = ISOWeekKey(seg.Start)
	}
	dayType := in.DayType.Resolve(seg.Start)
	diurnal := seg.Diurnal()

	switch {
	case !dayType.IsRestDay() && diurnal:
		usable := r.consumeOrdinary(day, week, minutes)
		r.book(day, CategoryOrdinary, usable)
		r.book(day, CategoryDayOvertime, minutes-usable)

	case !dayType.IsRestDay():
		r.reclassifyForNight(day, week, minutes)
		usable := r.consumeOrdinary(day, week, minutes)
		r.book(day, CategoryNightSurcharge, usable)
		r.book(day, CategoryNightOvertime, minutes-usable)

	case diurnal:
		if r.policy.HolidayDiurnalUsesDayBudget {
			usable := r.consumeOrdinary(day, week, minutes)
			r.book(day, CategoryOrdinary, usable)
			r.book(day, CategoryHolidayOvertime, minutes-usable)
		} else {
			r.book(day, CategoryHolidayOvertime, minutes)
		}

	default:
		r.book(day, r.policy.HolidayNocturnal, minutes)
	}
}

// consumeOrdinary books as many of the segment's minutes as both budgets
// allow and consumes them. Returns the usable minutes.
func (r *run) consumeOrdinary(day DayKey, week WeekKey, minutes int) int {
	usable := minutes
	if rem := r.budgets.get(day); rem < usable {
		usable = rem
	}
	if rem := r.ledger.Remaining(week); rem < usable {
		usable = rem
	}
	if usable <= 0 {
		return 0
	}
	r.budgets.consume(day, usable)
	r.ledger.Consume(week, usable)
	return usable
}

// reclassifyForNight frees budget room for a nocturnal ordinary-day
// segment by converting the day's already-booked diurnal ordinary minutes
// into HED. Night hours take priority for the weekly allowance; diurnal
// hours already counted as ordinary yield first.
func (r *run) reclassifyForNight(day DayKey, week WeekKey, minutes int) {
	available := r.budgets.get(day)
	if rem := r.ledger.Remaining(week); rem < available {
		available = rem
	}
	needed := minutes - available
	if needed <= 0 {
		return
	}

	dayTotals := r.dayTotals(day)
	transfer := dayTotals.Ordinary
	if needed < transfer {
		transfer = needed
	}
	if consumed := r.ledger.Consumed(week); consumed < transfer {
		transfer = consumed
	}
	if transfer <= 0 {
		return
	}

	dayTotals.Ordinary -= transfer
	dayTotals.HED += transfer
	r.totals.Ordinary -= transfer
	r.totals.HED += transfer

	r.ledger.Reclaim(week, transfer)
	r.budgets.reclaim(day, transfer)
}

func (r *run) book(day DayKey, c Category, minutes int) {
	if minutes <= 0 {
		return
	}
	r.dayTotals(day).add(c, minutes)
	r.totals.add(c, minutes)
}

func (r *run) dayTotals(day DayKey) *Buckets {
	b, ok := r.perDay[day]
	if !ok {
		b = &Buckets{}
		r.perDay[day] = b
	}
	return b
}
