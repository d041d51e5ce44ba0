package storage

import (
	"sync"
	"time"
)

const defaultJournalCapacity = 1000

// MemoryJournal keeps the last records in a ring buffer
type MemoryJournal struct {
	records  []GenerationRecord
	next     int
	full     bool
	capacity int
	mutex    sync.RWMutex
}

// NewMemoryJournal creates a journal holding at most capacity records;
// a non-positive capacity selects the default
func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = defaultJournalCapacity
	}
	return &MemoryJournal{
		records:  make([]GenerationRecord, capacity),
		capacity: capacity,
	}
}

func (m *MemoryJournal) Record(rec GenerationRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.records[m.next] = rec
	m.next = (m.next + 1) % m.capacity
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryJournal) Recent(userId int64, limit int) ([]GenerationRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := m.next
	if m.full {
		count = m.capacity
	}

	var result []GenerationRecord
	for i := 0; i < count && (limit <= 0 || len(result) < limit); i++ {
		idx := (m.next - 1 - i + m.capacity) % m.capacity
		if m.records[idx].UserId == userId {
			result = append(result, m.records[idx])
		}
	}
	return result, nil
}

// Close is a no-op for memory
func (m *MemoryJournal) Close() error {
	return nil
}
