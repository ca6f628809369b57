/*
Package sqlite provides a SQLite-backed RecordStore.

PURPOSE:
  Durable persistence for submitted shift records. The engine itself
  never touches storage; this package serves the collaborator layer
  that keeps entered records across restarts.

KEY TABLES:
  records:     One row per submitted shift
  record_days: Per-day category minutes for each record

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" in tests.

SEE ALSO:
  - payroll/types.go: RecordStore interface
  - payroll/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/turno/shift-engine/payroll"
	"github.com/turno/shift-engine/shift"
)

// Store implements payroll.RecordStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ payroll.RecordStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		person TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		day_type TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_person ON records(person);

	CREATE TABLE IF NOT EXISTS record_days (
		record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		ordinary INTEGER NOT NULL,
		rn INTEGER NOT NULL,
		hed INTEGER NOT NULL,
		hedf INTEGER NOT NULL,
		hen INTEGER NOT NULL,
		PRIMARY KEY (record_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_record_days_day ON record_days(day);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists a record and its per-day rows atomically.
func (s *Store) Save(ctx context.Context, rec payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (id, person, start_at, end_at, day_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Person,
		rec.Start.Format(time.RFC3339),
		rec.End.Format(time.RFC3339),
		string(rec.DayType),
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	for day, b := range rec.PerDay {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO record_days (record_id, day, ordinary, rn, hed, hedf, hen)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, string(day), b.Ordinary, b.RN, b.HED, b.HEDF, b.HEN,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record day: %w", err)
		}
	}

	return tx.Commit()
}

// List returns all records with their per-day minutes, oldest first.
func (s *Store) List(ctx context.Context) ([]payroll.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, person, start_at, end_at, day_type, created_at
		FROM records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.Record
	index := make(map[string]int)

	for rows.Next() {
		var rec payroll.Record
		var startAt, endAt, createdAt, dayType string
		if err := rows.Scan(&rec.ID, &rec.Person, &startAt, &endAt, &dayType, &createdAt); err != nil {
			return nil, err
		}
		rec.Start, _ = time.Parse(time.RFC3339, startAt)
		rec.End, _ = time.Parse(time.RFC3339, endAt)
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.DayType = shift.DayType(dayType)
		rec.PerDay = make(map[shift.DayKey]shift.Buckets)

		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayRows, err := s.db.QueryContext(ctx, `
		SELECT record_id, day, ordinary, rn, hed, hedf, hen FROM record_days`)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var recordID, day string
		var b shift.Buckets
		if err := dayRows.Scan(&recordID, &day, &b.Ordinary, &b.RN, &b.HED, &b.HEDF, &b.HEN); err != nil {
			return nil, err
		}
		if i, ok := index[recordID]; ok {
			records[i].PerDay[shift.DayKey(day)] = b
			records[i].Totals.Add(b)
		}
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Reset removes every record. Paired with the engine ledger reset.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM record_days`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	return err
}
