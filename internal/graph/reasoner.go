package graph

import (
	"fmt"
	"strings"

	"github.com/iho/amlguard/internal/domain"
)

// Config holds the rule thresholds and search bounds of the reasoner.
type Config struct {
	// FanInThreshold is the distinct-predecessor count above which the
	// fan-in rule fires.
	FanInThreshold int
	// FanInScore is the score increment of the fan-in rule.
	FanInScore float64
	// CycleScore is the score increment of the cycle rule.
	CycleScore float64
	// MaxCycleDepth caps the DFS depth of the cycle search.
	MaxCycleDepth int
	// CycleStepBudget caps the number of node expansions per cycle search.
	CycleStepBudget int
}

// DefaultConfig returns the default rule thresholds.
func DefaultConfig() Config {
	return Config{
		FanInThreshold:  5,
		FanInScore:      0.2,
		CycleScore:      0.5,
		MaxCycleDepth:   8,
		CycleStepBudget: 10000,
	}
}

// Reasoner applies the risk rules to the knowledge graph. The rules are
// fixed, hand-authored heuristics evaluated in order: fan-in first, then
// cycle membership.
type Reasoner struct {
	graph *Graph
	cfg   Config
}

// NewReasoner creates a reasoner over a fresh graph.
func NewReasoner(cfg Config) *Reasoner {
	return &Reasoner{
		graph: New(),
		cfg:   cfg,
	}
}

// Graph exposes the underlying graph for read-only inspection.
func (r *Reasoner) Graph() *Graph {
	return r.graph
}

// AddFact inserts a transfer fact into the knowledge graph. It always
// succeeds; duplicate transfers produce distinct parallel edges.
func (r *Reasoner) AddFact(tx domain.Transaction) {
	r.graph.AddEdge(tx.FromAccount, tx.ToAccount, tx.Amount, tx.Timestamp)
}

// InferRisk evaluates the rules for one account. The returned score is the
// sum of triggered increments and is not capped; reasons are listed in rule
// evaluation order. Accounts absent from the graph score zero with no
// reasons.
func (r *Reasoner) InferRisk(account string) domain.RiskAssessment {
	var assessment domain.RiskAssessment

	if !r.graph.HasNode(account) {
		return assessment
	}

	if in := r.graph.InDegree(account); in > r.cfg.FanInThreshold {
		assessment.Score += r.cfg.FanInScore
		assessment.Reasons = append(assessment.Reasons, fmt.Sprintf("high fan-in: %d", in))
	}

	cycle, err := r.graph.FindCycle(account, r.cfg.MaxCycleDepth, r.cfg.CycleStepBudget)
	switch {
	case err != nil:
		// Budget exhausted: degrade to zero contribution rather than
		// blocking the pipeline.
		assessment.Reasons = append(assessment.Reasons, "cycle check skipped: search budget exhausted")
		assessment.CycleSkipped = true
	case len(cycle) > 0:
		assessment.Score += r.cfg.CycleScore
		assessment.Reasons = append(assessment.Reasons,
			fmt.Sprintf("involved in cycle: %s", strings.Join(cycle, " -> ")))
		assessment.CycleDetected = true
	}

	return assessment
}
