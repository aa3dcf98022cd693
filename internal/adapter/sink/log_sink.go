package sink

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/amlguard/internal/domain"
)

// LogSink writes alerts to the structured log.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs one alert at warn level.
func (s *LogSink) Emit(_ context.Context, alert *domain.Alert) error {
	s.logger.Warn().
		Str("alert_id", alert.ID).
		Str("account", alert.Account).
		Str("risk_state", string(alert.RiskState)).
		Float64("logic_risk_score", alert.LogicRiskScore).
		Float64("anomaly_score", alert.AnomalyScore).
		Str("reasons", strings.Join(alert.Reasons, "; ")).
		Time("ts", alert.Timestamp).
		Msg("risk alert")
	return nil
}
