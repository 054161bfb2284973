package eventlog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps the most recent records in process. It backs the
// audit log when no database is configured; older records fall off once
// capacity is reached.
type MemoryRepository struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
	nextID   int64
	now      func() time.Time
}

// NewMemoryRepository creates a repository holding up to capacity records.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity, now: time.Now}
}

func (m *MemoryRepository) Append(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rec.ID = m.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now().UTC()
	}
	if len(m.records) == m.capacity {
		copy(m.records, m.records[1:])
		m.records = m.records[:len(m.records)-1]
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryRepository) Query(_ context.Context, q Query) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if q.Before > 0 && r.ID >= q.Before {
			continue
		}
		if !q.matches(r) {
			continue
		}
		out = append(out, r)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepository) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, r := range m.records {
		if !r.CreatedAt.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	purged := int64(len(m.records) - len(kept))
	m.records = kept
	return purged, nil
}
