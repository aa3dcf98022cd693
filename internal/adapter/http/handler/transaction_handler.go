// Package handler implements the HTTP request handlers.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/amlguard/internal/adapter/http/dto"
	"github.com/iho/amlguard/internal/domain"
)

// TransactionProcessor scores one transaction and returns the alert raised
// by it, if any.
type TransactionProcessor interface {
	Process(ctx context.Context, tx domain.Transaction) (*domain.Alert, error)
}

// TransactionHandler handles transaction ingestion requests.
type TransactionHandler struct {
	processor TransactionProcessor
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(processor TransactionProcessor) *TransactionHandler {
	return &TransactionHandler{processor: processor}
}

// Ingest scores a single transaction. It returns 201 with the alert when
// the transaction raised one, 204 when it passed without an alert.
func (h *TransactionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	alert, err := h.processor.Process(r.Context(), req.ToDomain())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process transaction", err.Error())

		return
	}

	if alert == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AlertFromDomain(alert))
}
