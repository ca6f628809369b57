/*
projection.go - Totals Projector

PURPOSE:
  Aggregates classified records into the person -> ISO week -> day view
  the results table renders, plus the filtered summary totals. Display
  shows hours with two decimals; storage stays in minutes.

FILTERING:
  A filter narrows by person and/or week. Week filtering applies per
  entry, not per record: an overnight Sunday->Monday shift contributes
  each day's minutes only to that day's ISO week.
*/
package payroll

import (
	"math"
	"sort"

	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// FILTER
// =============================================================================

// Filter narrows projection output. Zero values match everything.
type Filter struct {
	Person string
	Week   shift.WeekKey
}

func (f Filter) matchRecord(r Record) bool {
	if f.Person != "" && r.Person != f.Person {
		return false
	}
	if f.Week != "" {
		for _, e := range r.Entries() {
			if e.Week == f.Week {
				return true
			}
		}
		return false
	}
	return true
}

func (f Filter) matchEntry(e Entry) bool {
	return f.Week == "" || e.Week == f.Week
}

// =============================================================================
// PROJECTION
// =============================================================================

// DayRow is one aggregated row of the results view.
type DayRow struct {
	Person string
	Week   shift.WeekKey
	Day    shift.DayKey
	Values shift.Buckets
}

// Project groups the filtered records by person, week, and day, merging
// minutes from multiple shifts that land on the same day. Rows come back
// sorted by person, then week, then day.
func Project(records []Record, f Filter) []DayRow {
	type rowKey struct {
		person string
		week   shift.WeekKey
		day    shift.DayKey
	}
	merged := make(map[rowKey]shift.Buckets)

	for _, rec := range records {
		if !f.matchRecord(rec) {
			continue
		}
		for _, e := range rec.Entries() {
			if !f.matchEntry(e) {
				continue
			}
			k := rowKey{person: rec.Person, week: e.Week, day: e.Day}
			b := merged[k]
			b.Add(e.Values)
			merged[k] = b
		}
	}

	rows := make([]DayRow, 0, len(merged))
	for k, v := range merged {
		rows = append(rows, DayRow{Person: k.person, Week: k.week, Day: k.day, Values: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Person != rows[j].Person {
			return rows[i].Person < rows[j].Person
		}
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].Day < rows[j].Day
	})
	return rows
}

// Summarize totals the filtered entries across all categories.
func Summarize(records []Record, f Filter) shift.Buckets {
	var totals shift.Buckets
	for _, rec := range records {
		if !f.matchRecord(rec) {
			continue
		}
		for _, e := range rec.Entries() {
			if f.matchEntry(e) {
				totals.Add(e.Values)
			}
		}
	}
	return totals
}

// Persons returns the distinct person names, sorted, for filter dropdowns.
func Persons(records []Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		if !seen[rec.Person] {
			seen[rec.Person] = true
			names = append(names, rec.Person)
		}
	}
	sort.Strings(names)
	return names
}

// Weeks returns the distinct ISO weeks present, sorted, for filter dropdowns.
func Weeks(records []Record) []shift.WeekKey {
	seen := make(map[shift.WeekKey]bool)
	var weeks []shift.WeekKey
	for _, rec := range records {
		for _, e := range rec.Entries() {
			if !seen[e.Week] {
				seen[e.Week] = true
				weeks = append(weeks, e.Week)
			}
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })
	return weeks
}

// Hours converts minutes to hours rounded to two decimals for display.
func Hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}
