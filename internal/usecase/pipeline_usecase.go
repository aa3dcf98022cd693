package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/amlguard/internal/domain"
)

// Alert triggers, recorded on emission metrics.
const (
	TriggerHighRiskState = "high_risk_state"
	TriggerAnomalyScore  = "anomaly_score"
)

// DefaultAlertThreshold is the anomaly score above which an alert is
// emitted regardless of automaton state.
const DefaultAlertThreshold = 0.8

// PipelineConfig holds the pipeline's tunables.
type PipelineConfig struct {
	// AlertThreshold is the anomaly score trigger.
	AlertThreshold float64
	// StateTTL is the TTL handed to the persistence collaborator.
	StateTTL time.Duration
}

// Pipeline orchestrates the per-transaction decision sequence: state store
// update, feature derivation, graph fact insertion, rule inference,
// automaton transition, anomaly scoring, alert decision. It holds no
// persistent state of its own; every collaborator is injected.
type Pipeline struct {
	store       StateStore
	reasoner    GraphReasoner
	scorer      AnomalyScorer
	persistence StatePersistence
	idGen       IDGenerator
	metrics     PipelineMetrics
	logger      zerolog.Logger
	cfg         PipelineConfig
}

// NewPipeline creates a pipeline. persistence may be nil when no external
// state collaborator is configured; metrics may be nil.
func NewPipeline(
	store StateStore,
	reasoner GraphReasoner,
	scorer AnomalyScorer,
	persistence StatePersistence,
	idGen IDGenerator,
	metrics PipelineMetrics,
	logger zerolog.Logger,
	cfg PipelineConfig,
) *Pipeline {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if cfg.AlertThreshold == 0 {
		cfg.AlertThreshold = DefaultAlertThreshold
	}
	return &Pipeline{
		store:       store,
		reasoner:    reasoner,
		scorer:      scorer,
		persistence: persistence,
		idGen:       idGen,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Process runs one transaction through the pipeline and returns the emitted
// alert, if any. A validation error rejects only that transaction; the
// stream continues. Callers must serialize calls that share a sender
// account (see Stream).
func (p *Pipeline) Process(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
	if err := tx.Validate(); err != nil {
		p.metrics.TransactionRejected()
		p.logger.Warn().Err(err).
			Str("from", tx.FromAccount).
			Str("to", tx.ToAccount).
			Msg("rejecting malformed transaction")
		return nil, err
	}

	account := tx.FromAccount

	last, seen := p.store.LastTimestamp(account)
	if !seen {
		p.hydrateState(ctx, account)
	} else if tx.Timestamp.Before(last) {
		// Accepted but flagged: window features for this transaction may
		// be inaccurate.
		p.metrics.OutOfOrderTimestamp()
		p.logger.Warn().
			Str("account", account).
			Time("timestamp", tx.Timestamp).
			Time("last_seen", last).
			Msg("out-of-order timestamp")
	}

	p.store.RecordTransaction(account, tx)
	features := DeriveWindowFeatures(p.store.History(account))

	p.reasoner.AddFact(tx)
	assessment := p.reasoner.InferRisk(account)
	if assessment.CycleSkipped {
		p.metrics.CycleCheckSkipped()
	}

	current := p.store.GetState(account)
	next := domain.NextState(current, features, assessment.Score, assessment.CycleDetected)
	if next != current {
		p.transition(ctx, account, current, next, tx.Timestamp)
	}

	anomaly := p.scorer.Score(tx.ScoreVector())
	p.metrics.TransactionProcessed()

	trigger := ""
	switch {
	case next == domain.StateHighRisk:
		trigger = TriggerHighRiskState
	case anomaly > p.cfg.AlertThreshold:
		trigger = TriggerAnomalyScore
	default:
		return nil, nil
	}

	alert := &domain.Alert{
		ID:             p.idGen.Generate(),
		Timestamp:      tx.Timestamp,
		Account:        account,
		RiskState:      next,
		LogicRiskScore: assessment.Score,
		AnomalyScore:   anomaly,
		Reasons:        assessment.Reasons,
	}
	p.metrics.AlertEmitted(trigger)
	p.logger.Info().
		Str("alert_id", alert.ID).
		Str("account", account).
		Str("risk_state", string(next)).
		Float64("logic_risk_score", assessment.Score).
		Float64("anomaly_score", anomaly).
		Str("trigger", trigger).
		Msg("alert emitted")

	return alert, nil
}

// AssessAccount runs rule inference for an account on demand without
// mutating anything. Used by the read-side API.
func (p *Pipeline) AssessAccount(accountID string) (domain.RiskState, domain.RiskAssessment) {
	return p.store.GetState(accountID), p.reasoner.InferRisk(accountID)
}

// hydrateState pulls a previously persisted risk state for an account seen
// for the first time in this process. Persistence failures fall back to the
// in-memory default.
func (p *Pipeline) hydrateState(ctx context.Context, account string) {
	if p.persistence == nil {
		return
	}

	state, found, err := p.persistence.Load(ctx, account)
	if err != nil {
		p.metrics.PersistenceError()
		p.logger.Warn().Err(err).Str("account", account).Msg("state load failed, using in-memory default")
		return
	}
	if found && state.Valid() {
		p.store.SetState(account, state)
	}
}

// transition persists a state change and reports it. A persistence failure
// is reported but never blocks the stream.
func (p *Pipeline) transition(ctx context.Context, account string, from, to domain.RiskState, at time.Time) {
	p.store.SetState(account, to)
	p.metrics.StateTransition(domain.TransitionEvent{Account: account, From: from, To: to, At: at})
	p.logger.Info().
		Str("account", account).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("state transition")

	if p.persistence != nil {
		if err := p.persistence.Save(ctx, account, to, p.cfg.StateTTL); err != nil {
			p.metrics.PersistenceError()
			p.logger.Warn().Err(err).Str("account", account).Msg("state save failed")
		}
	}
}
