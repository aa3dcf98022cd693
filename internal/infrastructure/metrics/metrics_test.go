package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iho/amlguard/internal/domain"
	"github.com/iho/amlguard/internal/usecase"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.TransactionsProcessed == nil || m.StateTransitions == nil || m.AlertsEmitted == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestMetricsSatisfiesPipelineInterface(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	var pm usecase.PipelineMetrics = New()

	// Exercise every signal once; panics would fail the test.
	pm.TransactionProcessed()
	pm.TransactionRejected()
	pm.OutOfOrderTimestamp()
	pm.StateTransition(domain.TransitionEvent{From: domain.StateNormal, To: domain.StateStructuring})
	pm.CycleCheckSkipped()
	pm.AlertEmitted(usecase.TriggerHighRiskState)
	pm.PersistenceError()
}
