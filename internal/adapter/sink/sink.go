// Package sink provides alert delivery backends.
package sink

import (
	"context"
	"errors"

	"github.com/iho/amlguard/internal/domain"
	"github.com/iho/amlguard/internal/usecase"
)

// MultiSink fans one alert out to several sinks. Every sink sees every
// alert even when an earlier sink fails; errors are joined.
type MultiSink struct {
	sinks []usecase.AlertSink
}

// NewMultiSink creates a MultiSink. Nil sinks are skipped.
func NewMultiSink(sinks ...usecase.AlertSink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Emit delivers the alert to every configured sink.
func (m *MultiSink) Emit(ctx context.Context, alert *domain.Alert) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Emit(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
