// Package postgres implements the durable alert sink.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/amlguard/internal/domain"
)

// AlertRepository implements usecase.AlertSink over an append-only alerts
// table. Rows are only ever inserted; alerts are never mutated after
// emission.
type AlertRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewAlertRepository creates an AlertRepository.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Emit inserts one alert. Transient failures are retried with backoff.
func (r *AlertRepository) Emit(ctx context.Context, alert *domain.Alert) error {
	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO alerts (id, ts, account, risk_state, logic_risk_score, anomaly_score, reasons)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			alert.ID,
			alert.Timestamp,
			alert.Account,
			string(alert.RiskState),
			alert.LogicRiskScore,
			alert.AnomalyScore,
			alert.Reasons,
		)
		return err
	})
}

// List returns the most recent alerts, newest first.
func (r *AlertRepository) List(ctx context.Context, limit, offset int) ([]*domain.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ts, account, risk_state, logic_risk_score, anomaly_score, reasons
		FROM alerts
		ORDER BY ts DESC, id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		var (
			a         domain.Alert
			ts        time.Time
			riskState string
		)
		if err := rows.Scan(&a.ID, &ts, &a.Account, &riskState, &a.LogicRiskScore, &a.AnomalyScore, &a.Reasons); err != nil {
			return nil, err
		}
		a.Timestamp = ts
		a.RiskState = domain.RiskState(riskState)
		alerts = append(alerts, &a)
	}

	return alerts, rows.Err()
}

// ListByAccount returns the most recent alerts for one account.
func (r *AlertRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ts, account, risk_state, logic_risk_score, anomaly_score, reasons
		FROM alerts
		WHERE account = $1
		ORDER BY ts DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		var (
			a         domain.Alert
			ts        time.Time
			riskState string
		)
		if err := rows.Scan(&a.ID, &ts, &a.Account, &riskState, &a.LogicRiskScore, &a.AnomalyScore, &a.Reasons); err != nil {
			return nil, err
		}
		a.Timestamp = ts
		a.RiskState = domain.RiskState(riskState)
		alerts = append(alerts, &a)
	}

	return alerts, rows.Err()
}
