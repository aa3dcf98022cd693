// Package mocks holds hand-written test doubles for the usecase interfaces.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/iho/amlguard/internal/domain"
)

// MockStateStore is an in-memory StateStore with overridable behaviour.
type MockStateStore struct {
	mu      sync.RWMutex
	states  map[string]domain.RiskState
	history map[string][]domain.Transaction

	GetStateFunc          func(accountID string) domain.RiskState
	SetStateFunc          func(accountID string, state domain.RiskState)
	RecordTransactionFunc func(accountID string, tx domain.Transaction)
	HistoryFunc           func(accountID string) []domain.Transaction
	LastTimestampFunc     func(accountID string) (time.Time, bool)
}

func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		states:  make(map[string]domain.RiskState),
		history: make(map[string][]domain.Transaction),
	}
}

func (m *MockStateStore) GetState(accountID string) domain.RiskState {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.states[accountID]; ok {
		return s
	}
	return domain.StateNormal
}

func (m *MockStateStore) SetState(accountID string, state domain.RiskState) {
	if m.SetStateFunc != nil {
		m.SetStateFunc(accountID, state)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[accountID] = state
}

func (m *MockStateStore) RecordTransaction(accountID string, tx domain.Transaction) {
	if m.RecordTransactionFunc != nil {
		m.RecordTransactionFunc(accountID, tx)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[accountID] = append(m.history[accountID], tx)
}

func (m *MockStateStore) History(accountID string) []domain.Transaction {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history[accountID]
}

func (m *MockStateStore) LastTimestamp(accountID string) (time.Time, bool) {
	if m.LastTimestampFunc != nil {
		return m.LastTimestampFunc(accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	h := m.history[accountID]
	if len(h) == 0 {
		return time.Time{}, false
	}
	return h[len(h)-1].Timestamp, true
}

// MockGraphReasoner records facts and returns a canned assessment.
type MockGraphReasoner struct {
	mu    sync.Mutex
	facts []domain.Transaction

	AddFactFunc   func(tx domain.Transaction)
	InferRiskFunc func(accountID string) domain.RiskAssessment
}

func NewMockGraphReasoner() *MockGraphReasoner {
	return &MockGraphReasoner{}
}

func (m *MockGraphReasoner) AddFact(tx domain.Transaction) {
	if m.AddFactFunc != nil {
		m.AddFactFunc(tx)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facts = append(m.facts, tx)
}

func (m *MockGraphReasoner) InferRisk(accountID string) domain.RiskAssessment {
	if m.InferRiskFunc != nil {
		return m.InferRiskFunc(accountID)
	}
	return domain.RiskAssessment{}
}

func (m *MockGraphReasoner) Facts() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.facts))
	copy(out, m.facts)
	return out
}

// MockAnomalyScorer returns a fixed score.
type MockAnomalyScorer struct {
	ScoreFunc func(v domain.ScoreVector) float64
}

func NewMockAnomalyScorer() *MockAnomalyScorer {
	return &MockAnomalyScorer{}
}

func (m *MockAnomalyScorer) Score(v domain.ScoreVector) float64 {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(v)
	}
	return 0.5
}

// MockStatePersistence is an in-memory persistence collaborator.
type MockStatePersistence struct {
	mu     sync.Mutex
	states map[string]domain.RiskState

	LoadFunc func(ctx context.Context, accountID string) (domain.RiskState, bool, error)
	SaveFunc func(ctx context.Context, accountID string, state domain.RiskState, ttl time.Duration) error
}

func NewMockStatePersistence() *MockStatePersistence {
	return &MockStatePersistence{states: make(map[string]domain.RiskState)}
}

func (m *MockStatePersistence) Load(ctx context.Context, accountID string) (domain.RiskState, bool, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[accountID]
	return s, ok, nil
}

func (m *MockStatePersistence) Save(ctx context.Context, accountID string, state domain.RiskState, ttl time.Duration) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, accountID, state, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[accountID] = state
	return nil
}

// Saved returns the persisted state for an account, if any.
func (m *MockStatePersistence) Saved(accountID string) (domain.RiskState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[accountID]
	return s, ok
}

// MockAlertSink collects emitted alerts.
type MockAlertSink struct {
	mu     sync.Mutex
	alerts []*domain.Alert

	EmitFunc func(ctx context.Context, alert *domain.Alert) error
}

func NewMockAlertSink() *MockAlertSink {
	return &MockAlertSink{}
}

func (m *MockAlertSink) Emit(ctx context.Context, alert *domain.Alert) error {
	if m.EmitFunc != nil {
		return m.EmitFunc(ctx, alert)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *MockAlertSink) Alerts() []*domain.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}
