package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/amlguard/internal/adapter/http/dto"
	"github.com/iho/amlguard/internal/domain"
)

// RiskAssessor reports the current risk view of one account.
type RiskAssessor interface {
	AssessAccount(accountID string) (domain.RiskState, domain.RiskAssessment)
}

// AccountHandler handles account risk queries.
type AccountHandler struct {
	assessor RiskAssessor
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(assessor RiskAssessor) *AccountHandler {
	return &AccountHandler{assessor: assessor}
}

// GetRisk returns the current risk state and graph assessment for an
// account. Unseen accounts report the default state.
func (h *AccountHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	state, assessment := h.assessor.AssessAccount(accountID)

	writeJSON(w, http.StatusOK, dto.AccountRiskFromDomain(accountID, state, assessment))
}
