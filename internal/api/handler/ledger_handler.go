package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/techreviewhub/automation/internal/ledger"
)

// LedgerHandler exposes the audit trail read-only, so an operator can
// inspect collection and transfer history without touching the files.
type LedgerHandler struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

func NewLedgerHandler(l *ledger.Ledger, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{ledger: l, logger: logger}
}

// Collections handles GET /ledger/collections
func (h *LedgerHandler) Collections(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ledger.Collections()
	if err != nil {
		h.logger.Error("failed to read collections ledger", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "ledger read failed")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// Transfers handles GET /ledger/transfers
func (h *LedgerHandler) Transfers(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.Transfers()
	if err != nil {
		h.logger.Error("failed to read transfers ledger", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "ledger read failed")
		return
	}
	respondJSON(w, http.StatusOK, records)
}
