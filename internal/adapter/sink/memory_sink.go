package sink

import (
	"context"
	"sync"

	"github.com/iho/amlguard/internal/domain"
)

// DefaultMemorySinkCapacity bounds the number of alerts kept for the
// read-side listing endpoint.
const DefaultMemorySinkCapacity = 1000

// MemorySink keeps the most recent alerts in a bounded ring so the HTTP
// API can serve listings without a database.
type MemorySink struct {
	mu       sync.RWMutex
	alerts   []*domain.Alert
	start    int
	count    int
	capacity int
}

// NewMemorySink creates a MemorySink holding at most capacity alerts.
func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = DefaultMemorySinkCapacity
	}
	return &MemorySink{
		alerts:   make([]*domain.Alert, capacity),
		capacity: capacity,
	}
}

// Emit records one alert, evicting the oldest when full.
func (s *MemorySink) Emit(_ context.Context, alert *domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count < s.capacity {
		s.alerts[(s.start+s.count)%s.capacity] = alert
		s.count++
		return nil
	}

	s.alerts[s.start] = alert
	s.start = (s.start + 1) % s.capacity
	return nil
}

// Recent returns up to limit alerts, newest first.
func (s *MemorySink) Recent(limit int) []*domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > s.count {
		limit = s.count
	}

	out := make([]*domain.Alert, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.start + s.count - 1 - i + s.capacity) % s.capacity
		out = append(out, s.alerts[idx])
	}
	return out
}

// List returns up to limit alerts after skipping offset, newest first.
// It satisfies the HTTP alert listing interface so the API can run
// without a database.
func (s *MemorySink) List(_ context.Context, limit, offset int) ([]*domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= s.count {
		return nil, nil
	}

	remaining := s.count - offset
	if limit <= 0 || limit > remaining {
		limit = remaining
	}

	out := make([]*domain.Alert, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.start + s.count - 1 - offset - i) % s.capacity
		out = append(out, s.alerts[idx])
	}
	return out, nil
}

// Len returns the number of alerts currently held.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
