package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single observed transfer between two accounts. It is
// immutable once ingested. Timestamps are expected in non-decreasing order
// per sender; deviations are accepted but flagged.
type Transaction struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Currency    string
	Timestamp   time.Time
	PaymentType string
}

// Validate checks that the transaction carries every required field.
func (t *Transaction) Validate() error {
	if t.FromAccount == "" {
		return ErrMissingFromAccount
	}
	if t.ToAccount == "" {
		return ErrMissingToAccount
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// ScoreVector returns the fixed numeric feature vector consumed by the
// anomaly scorer.
func (t *Transaction) ScoreVector() ScoreVector {
	return ScoreVector{
		Amount:    t.Amount.InexactFloat64(),
		HourOfDay: float64(t.Timestamp.Hour()),
	}
}
