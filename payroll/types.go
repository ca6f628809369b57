/*
Package payroll contains the collaborators around the shift engine:
record keeping, per-person/per-week projection for display, and currency
valuation. None of this is engine logic; it consumes engine output.

KEY CONCEPTS:
  - Record: One submitted shift with its classified per-day minutes
  - Entry: A (day, ISO week, buckets) row derived from a record
  - RecordStore: Persistence boundary (memory and SQLite implementations)

SEE ALSO:
  - projection.go: Grouping, filtering, summary totals
  - valuation.go: rate x hours x category multiplier
  - store/memory.go, store/sqlite: RecordStore implementations
*/
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// RECORD - A submitted, classified shift
// =============================================================================

// Record is one submitted shift together with its classification.
type Record struct {
	ID        string
	Person    string
	Start     time.Time
	End       time.Time
	DayType   shift.DayType
	PerDay    map[shift.DayKey]shift.Buckets
	Totals    shift.Buckets
	CreatedAt time.Time
}

// NewRecord builds a record from an engine result.
func NewRecord(person string, result *shift.Result) Record {
	perDay := make(map[shift.DayKey]shift.Buckets, len(result.PerDay))
	for k, v := range result.PerDay {
		perDay[k] = v
	}
	return Record{
		ID:        recordID(person, result.Start),
		Person:    person,
		Start:     result.Start,
		End:       result.End,
		DayType:   result.DayType,
		PerDay:    perDay,
		Totals:    result.Totals,
		CreatedAt: time.Now(),
	}
}

// Entry is one per-day row of a record, tagged with its ISO week so
// overnight shifts split across week filters correctly.
type Entry struct {
	Day    shift.DayKey
	Week   shift.WeekKey
	Values shift.Buckets
}

// Entries returns the record's per-day rows in chronological order.
func (r Record) Entries() []Entry {
	result := shift.Result{PerDay: r.PerDay}
	days := result.Days()

	entries := make([]Entry, 0, len(days))
	for _, day := range days {
		entries = append(entries, Entry{
			Day:    day,
			Week:   shift.ISOWeekKey(day.Date()),
			Values: r.PerDay[day],
		})
	}
	return entries
}

func recordID(person string, start time.Time) string {
	return fmt.Sprintf("%s-%s", person, start.Format("200601021504"))
}

// =============================================================================
// RECORD STORE - Persistence boundary
// =============================================================================

// RecordStore persists submitted shift records. Implementations:
//   - store.Memory: in-memory, for tests and dev
//   - sqlite.Store: durable, for the server
type RecordStore interface {
	// Save persists a record.
	Save(ctx context.Context, rec Record) error

	// List returns all records ordered by submission.
	List(ctx context.Context) ([]Record, error)

	// Reset removes every record. Paired with the engine ledger reset.
	Reset(ctx context.Context) error
}
