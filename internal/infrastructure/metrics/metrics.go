// Package metrics registers the Prometheus instrumentation for the
// decision pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/amlguard/internal/domain"
)

// Metrics holds all Prometheus metrics. It satisfies the pipeline's
// metrics interface.
type Metrics struct {
	// Pipeline metrics
	TransactionsProcessed prometheus.Counter
	TransactionsRejected  prometheus.Counter
	OutOfOrderTimestamps  prometheus.Counter
	StateTransitions      *prometheus.CounterVec
	CycleChecksSkipped    prometheus.Counter
	AlertsEmitted         *prometheus.CounterVec
	PersistenceErrors     prometheus.Counter

	// Graph metrics
	GraphNodes prometheus.Gauge
	GraphEdges prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amlguard_transactions_processed_total",
			Help: "Total number of transactions accepted by the pipeline",
		}),
		TransactionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amlguard_transactions_rejected_total",
			Help: "Total number of transactions rejected by validation",
		}),
		OutOfOrderTimestamps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amlguard_out_of_order_timestamps_total",
			Help: "Total number of transactions with a timestamp earlier than the previous one for the account",
		}),
		StateTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amlguard_state_transitions_total",
				Help: "Total automaton state transitions by source and target state",
			},
			[]string{"from", "to"},
		),
		CycleChecksSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amlguard_cycle_checks_skipped_total",
			Help: "Total number of cycle checks abandoned after exhausting the search budget",
		}),
		AlertsEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amlguard_alerts_emitted_total",
				Help: "Total alerts emitted by trigger",
			},
			[]string{"trigger"},
		),
		PersistenceErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amlguard_persistence_errors_total",
			Help: "Total failures of the external state persistence collaborator",
		}),

		GraphNodes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "amlguard_graph_nodes",
			Help: "Current number of accounts in the knowledge graph",
		}),
		GraphEdges: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "amlguard_graph_edges",
			Help: "Current number of transaction edges in the knowledge graph",
		}),
	}
}

// TransactionProcessed increments the processed counter.
func (m *Metrics) TransactionProcessed() { m.TransactionsProcessed.Inc() }

// TransactionRejected increments the rejected counter.
func (m *Metrics) TransactionRejected() { m.TransactionsRejected.Inc() }

// OutOfOrderTimestamp increments the out-of-order counter.
func (m *Metrics) OutOfOrderTimestamp() { m.OutOfOrderTimestamps.Inc() }

// StateTransition records one automaton transition.
func (m *Metrics) StateTransition(ev domain.TransitionEvent) {
	m.StateTransitions.WithLabelValues(string(ev.From), string(ev.To)).Inc()
}

// CycleCheckSkipped increments the skipped cycle check counter.
func (m *Metrics) CycleCheckSkipped() { m.CycleChecksSkipped.Inc() }

// AlertEmitted records one emitted alert.
func (m *Metrics) AlertEmitted(trigger string) {
	m.AlertsEmitted.WithLabelValues(trigger).Inc()
}

// PersistenceError increments the persistence failure counter.
func (m *Metrics) PersistenceError() { m.PersistenceErrors.Inc() }

// ObserveGraph updates the graph size gauges.
func (m *Metrics) ObserveGraph(nodes, edges int) {
	m.GraphNodes.Set(float64(nodes))
	m.GraphEdges.Set(float64(edges))
}
