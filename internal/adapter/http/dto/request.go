// Package dto defines the HTTP request and response shapes.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/amlguard/internal/domain"
)

// IngestTransactionRequest represents one transaction submitted for scoring.
type IngestTransactionRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Timestamp   time.Time       `json:"timestamp"`
	PaymentType string          `json:"payment_type,omitempty"`
}

// ToDomain converts to a domain transaction.
func (r *IngestTransactionRequest) ToDomain() domain.Transaction {
	return domain.Transaction{
		FromAccount: r.FromAccount,
		ToAccount:   r.ToAccount,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Timestamp:   r.Timestamp,
		PaymentType: r.PaymentType,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
