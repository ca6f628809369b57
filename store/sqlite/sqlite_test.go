package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turno/shift-engine/payroll"
	"github.com/turno/shift-engine/shift"
	"github.com/turno/shift-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testRecord(id, person string) payroll.Record {
	start := time.Date(2025, time.March, 9, 19, 0, 0, 0, time.UTC)
	return payroll.Record{
		ID:      id,
		Person:  person,
		Start:   start,
		End:     start.Add(10 * time.Hour),
		DayType: shift.DaySunday,
		PerDay: map[shift.DayKey]shift.Buckets{
			"2025-03-09": {HEDF: 120, HEN: 180},
			"2025-03-10": {RN: 300},
		},
		Totals:    shift.Buckets{HEDF: 120, HEN: 180, RN: 300},
		CreatedAt: time.Date(2025, time.March, 10, 5, 1, 0, 0, time.UTC),
	}
}

func TestStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Save(ctx, testRecord("r1", "Laura")))

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, "Laura", rec.Person)
	assert.Equal(t, shift.DaySunday, rec.DayType)
	assert.True(t, rec.Start.Equal(time.Date(2025, time.March, 9, 19, 0, 0, 0, time.UTC)))

	// Per-day rows and totals are rebuilt from record_days.
	assert.Equal(t, shift.Buckets{HEDF: 120, HEN: 180}, rec.PerDay["2025-03-09"])
	assert.Equal(t, shift.Buckets{RN: 300}, rec.PerDay["2025-03-10"])
	assert.Equal(t, shift.Buckets{HEDF: 120, HEN: 180, RN: 300}, rec.Totals)
}

func TestStore_ListOrdersBySubmission(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := testRecord("r1", "Laura")
	second := testRecord("r2", "Marta")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, st.Save(ctx, second))
	require.NoError(t, st.Save(ctx, first))

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, "r2", records[1].ID)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Save(ctx, testRecord("r1", "Laura")))
	err := st.Save(ctx, testRecord("r1", "Laura"))
	assert.Error(t, err, "primary key violation should surface")
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Save(ctx, testRecord("r1", "Laura")))
	require.NoError(t, st.Reset(ctx))

	records, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// The store remains writable after a reset.
	require.NoError(t, st.Save(ctx, testRecord("r1", "Laura")))
}
