package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/amlguard/internal/adapter/http/dto"
	"github.com/iho/amlguard/internal/domain"
)

type stubAssessor struct {
	state      domain.RiskState
	assessment domain.RiskAssessment
	lastID     string
}

func (s *stubAssessor) AssessAccount(accountID string) (domain.RiskState, domain.RiskAssessment) {
	s.lastID = accountID
	return s.state, s.assessment
}

func getRisk(t *testing.T, h *AccountHandler, accountID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/risk", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", accountID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.GetRisk(rec, req)
	return rec
}

func TestAccountHandler_GetRisk(t *testing.T) {
	assessor := &stubAssessor{
		state: domain.StateLayering,
		assessment: domain.RiskAssessment{
			Score:         0.7,
			Reasons:       []string{"high fan-in: 6", "involved in cycle: a -> b -> c"},
			CycleDetected: true,
		},
	}
	h := NewAccountHandler(assessor)

	rec := getRisk(t, h, "acc-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if assessor.lastID != "acc-1" {
		t.Errorf("assessed account = %q, want acc-1", assessor.lastID)
	}

	var resp dto.AccountRiskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RiskState != string(domain.StateLayering) {
		t.Errorf("risk state = %q, want %q", resp.RiskState, domain.StateLayering)
	}
	if !resp.CycleDetected {
		t.Error("expected cycle_detected to be true")
	}
	if resp.LogicRiskScore != 0.7 {
		t.Errorf("logic risk score = %v, want 0.7", resp.LogicRiskScore)
	}
}

func TestAccountHandler_GetRiskUnseenAccount(t *testing.T) {
	assessor := &stubAssessor{state: domain.StateNormal}
	h := NewAccountHandler(assessor)

	rec := getRisk(t, h, "nobody")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp dto.AccountRiskResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RiskState != string(domain.StateNormal) {
		t.Errorf("risk state = %q, want %q", resp.RiskState, domain.StateNormal)
	}
}
