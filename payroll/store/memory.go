// Package store provides RecordStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/turno/shift-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records []payroll.Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, rec payroll.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *Memory) List(_ context.Context) ([]payroll.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]payroll.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

var _ payroll.RecordStore = (*Memory)(nil)
