package usecase

import (
	"context"
	"time"

	"github.com/iho/amlguard/internal/domain"
)

// StateStore holds per-account automaton state and bounded sender history.
// Implementations must confine side effects to the addressed account.
type StateStore interface {
	// GetState returns NORMAL for unseen accounts and never errors.
	GetState(accountID string) domain.RiskState
	// SetState overwrites the account state; idempotent.
	SetState(accountID string, state domain.RiskState)
	// RecordTransaction appends to the bounded history, evicting the
	// oldest entry at capacity.
	RecordTransaction(accountID string, tx domain.Transaction)
	// History returns the bounded history, most recent last.
	History(accountID string) []domain.Transaction
	// LastTimestamp returns the most recently recorded timestamp.
	LastTimestamp(accountID string) (time.Time, bool)
}

// GraphReasoner maintains the knowledge graph and evaluates risk rules.
type GraphReasoner interface {
	AddFact(tx domain.Transaction)
	InferRisk(accountID string) domain.RiskAssessment
}

// AnomalyScorer maps a fixed feature vector to an outlier probability in
// [0,1]. Implementations return a neutral default while untrained.
type AnomalyScorer interface {
	Score(v domain.ScoreVector) float64
}

// StatePersistence is the external key-value collaborator mirroring risk
// states. It is best-effort: the pipeline functions on in-memory defaults
// when it is unavailable.
type StatePersistence interface {
	Load(ctx context.Context, accountID string) (domain.RiskState, bool, error)
	Save(ctx context.Context, accountID string, state domain.RiskState, ttl time.Duration) error
}

// AlertSink receives emitted alerts one at a time, in emission order.
type AlertSink interface {
	Emit(ctx context.Context, alert *domain.Alert) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// PipelineMetrics receives pipeline observability signals.
type PipelineMetrics interface {
	TransactionProcessed()
	TransactionRejected()
	OutOfOrderTimestamp()
	StateTransition(ev domain.TransitionEvent)
	CycleCheckSkipped()
	AlertEmitted(trigger string)
	PersistenceError()
}

// NopMetrics discards all signals.
type NopMetrics struct{}

func (NopMetrics) TransactionProcessed()                    {}
func (NopMetrics) TransactionRejected()                     {}
func (NopMetrics) OutOfOrderTimestamp()                     {}
func (NopMetrics) StateTransition(_ domain.TransitionEvent) {}
func (NopMetrics) CycleCheckSkipped()                       {}
func (NopMetrics) AlertEmitted(_ string)                    {}
func (NopMetrics) PersistenceError()                        {}
