// Package memory holds the in-memory account state store.
package memory

import (
	"sync"
	"time"

	"github.com/iho/amlguard/internal/domain"
)

// DefaultHistoryCapacity is the bounded history size per account.
const DefaultHistoryCapacity = 100

// StateStore implements usecase.StateStore with per-account records held in
// memory. Accounts are created lazily on first use with state NORMAL and an
// empty history, and live for the process lifetime.
type StateStore struct {
	mu       sync.RWMutex
	capacity int
	accounts map[string]*record
}

// record holds one account's automaton state and its bounded sender
// history as a fixed-capacity ring buffer.
type record struct {
	state   domain.RiskState
	history []domain.Transaction
	start   int
	count   int
	lastTS  time.Time
	seenTS  bool
}

// NewStateStore creates a store with the given history capacity per
// account. Non-positive capacity falls back to the default.
func NewStateStore(capacity int) *StateStore {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &StateStore{
		capacity: capacity,
		accounts: make(map[string]*record),
	}
}

// GetState returns the account's automaton state, NORMAL for unseen
// accounts. It never errors.
func (s *StateStore) GetState(accountID string) domain.RiskState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.accounts[accountID]; ok {
		return rec.state
	}
	return domain.StateNormal
}

// SetState overwrites the account's automaton state. Idempotent.
func (s *StateStore) SetState(accountID string, state domain.RiskState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(accountID).state = state
}

// RecordTransaction appends a transaction to the account's bounded history,
// evicting the oldest entry when at capacity. O(1) amortized.
func (s *StateStore) RecordTransaction(accountID string, tx domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(accountID)
	if rec.count < s.capacity {
		rec.history = append(rec.history, tx)
		rec.count++
	} else {
		rec.history[rec.start] = tx
		rec.start = (rec.start + 1) % s.capacity
	}

	rec.lastTS = tx.Timestamp
	rec.seenTS = true
}

// History returns a copy of the account's bounded history, oldest first.
// Empty for unseen accounts.
func (s *StateStore) History(accountID string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[accountID]
	if !ok || rec.count == 0 {
		return nil
	}

	out := make([]domain.Transaction, 0, rec.count)
	for i := 0; i < rec.count; i++ {
		out = append(out, rec.history[(rec.start+i)%s.capacity])
	}
	return out
}

// LastTimestamp returns the timestamp of the account's most recently
// recorded transaction, and whether one exists.
func (s *StateStore) LastTimestamp(accountID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[accountID]
	if !ok || !rec.seenTS {
		return time.Time{}, false
	}
	return rec.lastTS, true
}

// record returns the account's record, creating it lazily. Callers must
// hold the write lock.
func (s *StateStore) record(accountID string) *record {
	rec, ok := s.accounts[accountID]
	if !ok {
		rec = &record{state: domain.StateNormal}
		s.accounts[accountID] = rec
	}
	return rec
}
