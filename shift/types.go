/*
Package shift provides the core shift classification engine.

PURPOSE:
  This package contains the types and algorithms that split a continuous
  work interval into wage categories under Colombian-style labor rules:
  a diurnal window of [06:00, 21:00), an 8-hour daily and 44-hour weekly
  ordinary allowance, and rest deduction before classification.

KEY CONCEPTS IN THIS FILE (types.go):
  - Interval/Segment: Time spans; segments never cross a clock boundary
  - Category: One of the five mutually exclusive wage categories
  - DayKey/WeekKey: Calendar-date and ISO-week bucketing identifiers
  - Buckets: Per-category minute totals
  - Policy: The configurable classification rules

DESIGN PRINCIPLES:
  1. Purity: Segmentation and rest removal are pure transformations
  2. Minute resolution: All arithmetic is in whole minutes
  3. Immutability: Segments and results are never mutated after creation
  4. Explicit policy: Divergent holiday rules are flags, not constants

SEE ALSO:
  - segment.go: Boundary segmentation
  - rest.go: Rest removal policies
  - ledger.go: Daily and weekly ordinary-time budgets
  - engine.go: Category allocation and reclassification
*/
package shift

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK BOUNDARIES
// =============================================================================

const (
	// DiurnalStartMinute and DiurnalEndMinute bound the diurnal window
	// [06:00, 21:00) in minutes since midnight. 21:00 itself is nocturnal.
	DiurnalStartMinute = 6 * 60
	DiurnalEndMinute   = 21 * 60

	// DailyOrdinaryMinutes is the standard daily ordinary allowance (8h).
	DailyOrdinaryMinutes = 480

	// WeeklyOrdinaryMinutes is the standard weekly ordinary allowance (44h).
	WeeklyOrdinaryMinutes = 2640
)

// =============================================================================
// CATEGORY - Mutually exclusive wage categories
// =============================================================================

type Category string

const (
	CategoryOrdinary        Category = "ordinary" // Ordinary diurnal hours
	CategoryNightSurcharge  Category = "rn"       // Recargo nocturno
	CategoryDayOvertime     Category = "hed"      // Hora extra diurna
	CategoryHolidayOvertime Category = "hedf"     // Hora extra diurna dominical/festiva
	CategoryNightOvertime   Category = "hen"      // Hora extra nocturna
)

// Categories lists all categories in reporting order.
var Categories = []Category{
	CategoryOrdinary,
	CategoryNightSurcharge,
	CategoryDayOvertime,
	CategoryHolidayOvertime,
	CategoryNightOvertime,
}

// =============================================================================
// DAY TYPE - Ordinary vs Sunday/holiday, resolved per shift
// =============================================================================

type DayType string

const (
	DayOrdinary DayType = "ordinario"
	DaySunday   DayType = "dominical"
	DayHoliday  DayType = "festivo"
)

// DayTypeOverride is the caller-supplied override. "auto" resolves from the
// calendar weekday of each segment start (Sunday => dominical).
type DayTypeOverride string

const OverrideAuto DayTypeOverride = "auto"

// Resolve returns the effective day type for a point in time.
func (o DayTypeOverride) Resolve(at time.Time) DayType {
	if o != "" && o != OverrideAuto {
		return DayType(o)
	}
	if at.Weekday() == time.Sunday {
		return DaySunday
	}
	return DayOrdinary
}

// IsRestDay reports whether the day type carries Sunday/holiday treatment.
func (d DayType) IsRestDay() bool {
	return d == DaySunday || d == DayHoliday
}

// =============================================================================
// INTERVAL / SEGMENT
// =============================================================================

// Interval is an ordered pair of instants. Invariant: End after Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval duration in whole minutes.
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format("2006-01-02 15:04"), iv.End.Format("2006-01-02 15:04"))
}

// Segment is an interval guaranteed not to cross 06:00, 21:00, or midnight.
// Segments are produced only by Split and are disposable intermediates.
type Segment struct {
	Interval
}

// Diurnal reports whether the segment lies in the diurnal window.
// The segment is single-zone by construction, so its start decides.
func (s Segment) Diurnal() bool {
	m := s.Start.Hour()*60 + s.Start.Minute()
	return m >= DiurnalStartMinute && m < DiurnalEndMinute
}

// =============================================================================
// DAY KEY / WEEK KEY
// =============================================================================

// DayKey is a local calendar date, formatted YYYY-MM-DD.
type DayKey string

// DayKeyOf derives the calendar date of an instant in its own location.
func DayKeyOf(at time.Time) DayKey {
	return DayKey(at.Format("2006-01-02"))
}

// Date returns the midnight instant of the day key in UTC.
func (d DayKey) Date() time.Time {
	t, _ := time.Parse("2006-01-02", string(d))
	return t
}

// WeekKey identifies the weekly allowance bucket: either a caller override
// or an ISO-8601 week identifier (YYYY-Www).
type WeekKey string

// ISOWeekKey computes the ISO-8601 week identifier of an instant.
func ISOWeekKey(at time.Time) WeekKey {
	year, week := at.ISOWeek()
	return WeekKey(fmt.Sprintf("%d-W%02d", year, week))
}

// =============================================================================
// BUCKETS - Per-category minute totals
// =============================================================================

// Buckets holds minute totals per category. The zero value is empty.
type Buckets struct {
	Ordinary int `json:"ordinary"`
	RN       int `json:"rn"`
	HED      int `json:"hed"`
	HEDF     int `json:"hedf"`
	HEN      int `json:"hen"`
}

func (b *Buckets) add(c Category, minutes int) {
	switch c {
	case CategoryOrdinary:
		b.Ordinary += minutes
	case CategoryNightSurcharge:
		b.RN += minutes
	case CategoryDayOvertime:
		b.HED += minutes
	case CategoryHolidayOvertime:
		b.HEDF += minutes
	case CategoryNightOvertime:
		b.HEN += minutes
	}
}

// Get returns the minutes booked under a category.
func (b Buckets) Get(c Category) int {
	switch c {
	case CategoryOrdinary:
		return b.Ordinary
	case CategoryNightSurcharge:
		return b.RN
	case CategoryDayOvertime:
		return b.HED
	case CategoryHolidayOvertime:
		return b.HEDF
	case CategoryNightOvertime:
		return b.HEN
	}
	return 0
}

// Total returns the sum across all categories.
func (b Buckets) Total() int {
	return b.Ordinary + b.RN + b.HED + b.HEDF + b.HEN
}

// Add merges another bucket set into this one.
func (b *Buckets) Add(other Buckets) {
	b.Ordinary += other.Ordinary
	b.RN += other.RN
	b.HED += other.HED
	b.HEDF += other.HEDF
	b.HEN += other.HEN
}

// =============================================================================
// RESULT - Output of one allocation run
// =============================================================================

// Result holds per-day category totals plus grand totals for one shift.
// Immutable once returned.
type Result struct {
	Start   time.Time
	End     time.Time
	DayType DayType // effective day type at shift start, for display
	PerDay  map[DayKey]Buckets
	Totals  Buckets
}

// Days returns the day keys of the result in chronological order.
func (r *Result) Days() []DayKey {
	keys := make([]DayKey, 0, len(r.PerDay))
	for k := range r.PerDay {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// =============================================================================
// POLICY - Configurable classification rules
// =============================================================================

// Policy captures the classification rules that diverge across call sites.
// The defaults reproduce the behavior of the reference calculator:
// Sunday/holiday diurnal hours are all HEDF, nocturnal hours are all HEN.
type Policy struct {
	// DailyOrdinary is the per-day ordinary allowance in minutes.
	DailyOrdinary int

	// WeeklyOrdinary is the per-week ordinary allowance in minutes.
	WeeklyOrdinary int

	// HolidayDiurnalUsesDayBudget lets the remaining day budget absorb
	// Sunday/holiday diurnal minutes as ordinary before HEDF.
	HolidayDiurnalUsesDayBudget bool

	// HolidayNocturnal is the category for Sunday/holiday nocturnal minutes:
	// CategoryNightOvertime or CategoryNightSurcharge.
	HolidayNocturnal Category

	// MaxRestMinutes caps a declared rest. 0 means no cap.
	MaxRestMinutes int
}

// DefaultPolicy returns the observed reference configuration.
func DefaultPolicy() Policy {
	return Policy{
		DailyOrdinary:               DailyOrdinaryMinutes,
		WeeklyOrdinary:              WeeklyOrdinaryMinutes,
		HolidayDiurnalUsesDayBudget: false,
		HolidayNocturnal:            CategoryNightOvertime,
		MaxRestMinutes:              240,
	}
}
