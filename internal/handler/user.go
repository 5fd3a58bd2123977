package handler

import (
	"net/http"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/user"
)

// HandleGetProfile returns the session user's account
// @Summary Get own profile
// @Tags user
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func HandleGetProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpGetProfile, err)
			return
		}

		u, err := svc.GetProfile(r.Context(), session)
		if err != nil {
			respondServiceError(w, r, OpGetProfile, err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}
