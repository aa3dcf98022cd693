package domain

import "time"

// RiskState is the automaton state of an account.
type RiskState string

const (
	StateNormal      RiskState = "NORMAL"
	StateStructuring RiskState = "STRUCTURING"
	StateLayering    RiskState = "LAYERING"
	StateHighRisk    RiskState = "HIGH_RISK"
)

// Valid reports whether s is one of the defined risk states.
func (s RiskState) Valid() bool {
	switch s {
	case StateNormal, StateStructuring, StateLayering, StateHighRisk:
		return true
	}
	return false
}

// RiskAssessment is the result of rule evaluation over the knowledge graph
// for one account. It is computed per transaction and never persisted.
type RiskAssessment struct {
	// Score is the sum of triggered rule increments. It is not capped and
	// can exceed 1.0; it is distinct from the anomaly model's probability.
	Score float64
	// Reasons holds one entry per triggered rule, in evaluation order.
	Reasons []string
	// CycleDetected is set when the cycle rule fired.
	CycleDetected bool
	// CycleSkipped is set when the cycle search ran out of budget and the
	// rule contributed nothing.
	CycleSkipped bool
}

// Alert is an emitted risk alert. Alerts are append-only and never mutated
// after emission.
type Alert struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Account        string    `json:"account"`
	RiskState      RiskState `json:"risk_state"`
	LogicRiskScore float64   `json:"logic_risk_score"`
	AnomalyScore   float64   `json:"anomaly_score"`
	Reasons        []string  `json:"reasons,omitempty"`
}

// TransitionEvent records an automaton state change for observability.
type TransitionEvent struct {
	Account string    `json:"account"`
	From    RiskState `json:"from"`
	To      RiskState `json:"to"`
	At      time.Time `json:"at"`
}
