package handler

import (
	"context"
	"net/http"

	"github.com/iho/amlguard/internal/adapter/http/dto"
	"github.com/iho/amlguard/internal/domain"
)

// AlertLister lists recently emitted alerts, newest first.
type AlertLister interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Alert, error)
}

// AlertHandler handles alert listing requests.
type AlertHandler struct {
	lister AlertLister
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(lister AlertLister) *AlertHandler {
	return &AlertHandler{lister: lister}
}

// List returns recent alerts.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	alerts, err := h.lister.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list alerts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AlertsFromDomain(alerts))
}
