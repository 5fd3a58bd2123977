package handler

import (
	"net/http"
	"strconv"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/economy"
)

// HandleListTransactions lists the session user's ledger entries, newest first
// @Summary List balance transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {array} domain.LedgerEntry
// @Security BearerAuth
// @Router /transactions [get]
func HandleListTransactions(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpListTransactions, err)
			return
		}

		limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", "0"))
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}

		entries, err := svc.ListTransactions(r.Context(), session, limit)
		if err != nil {
			respondServiceError(w, r, OpListTransactions, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
