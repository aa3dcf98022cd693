package dto

import (
	"time"

	"github.com/iho/amlguard/internal/domain"
)

// AlertResponse represents an alert in API responses.
type AlertResponse struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Account        string    `json:"account"`
	RiskState      string    `json:"risk_state"`
	LogicRiskScore float64   `json:"logic_risk_score"`
	AnomalyScore   float64   `json:"anomaly_score"`
	Reasons        []string  `json:"reasons"`
}

// AlertFromDomain converts a domain alert to a response.
func AlertFromDomain(a *domain.Alert) *AlertResponse {
	return &AlertResponse{
		ID:             a.ID,
		Timestamp:      a.Timestamp,
		Account:        a.Account,
		RiskState:      string(a.RiskState),
		LogicRiskScore: a.LogicRiskScore,
		AnomalyScore:   a.AnomalyScore,
		Reasons:        a.Reasons,
	}
}

// AlertsFromDomain converts domain alerts to responses.
func AlertsFromDomain(alerts []*domain.Alert) []*AlertResponse {
	result := make([]*AlertResponse, len(alerts))
	for i, a := range alerts {
		result[i] = AlertFromDomain(a)
	}
	return result
}

// AccountRiskResponse represents the current risk view of one account.
type AccountRiskResponse struct {
	Account        string   `json:"account"`
	RiskState      string   `json:"risk_state"`
	LogicRiskScore float64  `json:"logic_risk_score"`
	Reasons        []string `json:"reasons"`
	CycleDetected  bool     `json:"cycle_detected"`
	CycleSkipped   bool     `json:"cycle_skipped,omitempty"`
}

// AccountRiskFromDomain builds an account risk response.
func AccountRiskFromDomain(account string, state domain.RiskState, assessment domain.RiskAssessment) *AccountRiskResponse {
	return &AccountRiskResponse{
		Account:        account,
		RiskState:      string(state),
		LogicRiskScore: assessment.Score,
		Reasons:        assessment.Reasons,
		CycleDetected:  assessment.CycleDetected,
		CycleSkipped:   assessment.CycleSkipped,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
