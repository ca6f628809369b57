/*
ledger.go - Daily and weekly ordinary-time budgets

PURPOSE:
  Tracks how much ordinary allowance remains. Two scopes with different
  lifetimes:

  dayBudget:  480 minutes per calendar day, created lazily inside one
              allocation run and discarded with it.
  WeekLedger: 2640 minutes per ISO week (or week override), process-wide,
              shared across every shift submitted in a session until an
              explicit reset.

INVARIANTS:
  - Week consumption is never negative
  - Outside deliberate reclamation, week consumption never decreases
  - A day budget never exceeds its initial allowance

SNAPSHOT/RESTORE:
  The ledger supports the "preview then revert" pattern: take a snapshot,
  run an allocation, restore. Engine.Preview relies on this.

SEE ALSO:
  - engine.go: The only consumer of Consume/Reclaim
*/
package shift

import "sync"

// =============================================================================
// WEEK LEDGER - Process-wide weekly allowance state
// =============================================================================

// WeekLedger maps week keys to ordinary minutes already consumed.
// Not safe for concurrent mutation on its own; the Engine serializes
// allocation runs around it.
type WeekLedger struct {
	mu        sync.RWMutex
	allowance int
	consumed  map[WeekKey]int
}

// NewWeekLedger creates a ledger with the given weekly allowance in minutes.
func NewWeekLedger(weeklyAllowance int) *WeekLedger {
	return &WeekLedger{
		allowance: weeklyAllowance,
		consumed:  make(map[WeekKey]int),
	}
}

// Remaining returns the ordinary minutes still available in a week.
func (l *WeekLedger) Remaining(week WeekKey) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rem := l.allowance - l.consumed[week]
	if rem < 0 {
		return 0
	}
	return rem
}

// Consumed returns the ordinary minutes already booked in a week.
func (l *WeekLedger) Consumed(week WeekKey) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.consumed[week]
}

// Consume books ordinary minutes against a week.
func (l *WeekLedger) Consume(week WeekKey, minutes int) {
	if minutes <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consumed[week] += minutes
}

// Reclaim releases previously consumed minutes, clamped so consumption
// never goes negative. Used only by allocator reclassification.
// Returns the minutes actually released.
func (l *WeekLedger) Reclaim(week WeekKey, minutes int) int {
	if minutes <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if minutes > l.consumed[week] {
		minutes = l.consumed[week]
	}
	l.consumed[week] -= minutes
	return minutes
}

// Reset clears all weekly state. Invoked on a full session reset.
func (l *WeekLedger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consumed = make(map[WeekKey]int)
}

// Snapshot captures the current weekly consumption for later Restore.
func (l *WeekLedger) Snapshot() map[WeekKey]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := make(map[WeekKey]int, len(l.consumed))
	for k, v := range l.consumed {
		snap[k] = v
	}
	return snap
}

// Restore replaces the weekly consumption with a previous snapshot.
func (l *WeekLedger) Restore(snap map[WeekKey]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consumed = make(map[WeekKey]int, len(snap))
	for k, v := range snap {
		l.consumed[k] = v
	}
}

// =============================================================================
// DAY BUDGET - Run-scoped daily allowance
// =============================================================================

// dayBudget tracks remaining daily ordinary minutes for one allocation run.
// Entries are created lazily on first sight of a day key.
type dayBudget struct {
	allowance int
	remaining map[DayKey]int
}

func newDayBudget(dailyAllowance int) *dayBudget {
	return &dayBudget{allowance: dailyAllowance, remaining: make(map[DayKey]int)}
}

func (b *dayBudget) get(day DayKey) int {
	if _, ok := b.remaining[day]; !ok {
		b.remaining[day] = b.allowance
	}
	return b.remaining[day]
}

func (b *dayBudget) consume(day DayKey, minutes int) {
	b.remaining[day] = b.get(day) - minutes
}

// reclaim returns minutes to the day, clamped at the initial allowance.
func (b *dayBudget) reclaim(day DayKey, minutes int) {
	rem := b.get(day) + minutes
	if rem > b.allowance {
		rem = b.allowance
	}
	b.remaining[day] = rem
}
