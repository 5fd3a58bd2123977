package handler

import (
	"net/http"
	"strconv"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/caseopening"
	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/reel"
)

// BuyCaseResponse confirms a purchase and reports the new balance
type BuyCaseResponse struct {
	Purchase   *domain.PurchasedCase `json:"purchase"`
	NewBalance int64                 `json:"new_balance"`
}

// OpenCaseResponse carries the authoritative result and the reel strip the
// client animates before revealing it
type OpenCaseResponse struct {
	Result       *domain.OpenResult `json:"result"`
	Reel         reel.Strip         `json:"reel"`
	TargetOffset int                `json:"target_offset"`
}

// HandleListCases lists cases available for purchase
// @Summary List active cases
// @Tags cases
// @Produce json
// @Success 200 {array} domain.Case
// @Router /cases [get]
func HandleListCases(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cases, err := svc.ListCases(r.Context())
		if err != nil {
			respondServiceError(w, r, OpListCases, err)
			return
		}
		respondJSON(w, http.StatusOK, cases)
	}
}

// HandleGetCase returns a single case
// @Summary Get a case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} domain.Case
// @Failure 404 {object} ErrorResponse
// @Router /cases/{caseID} [get]
func HandleGetCase(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, ok := URLParamUUID(r, w, "caseID")
		if !ok {
			return
		}

		c, err := svc.GetCase(r.Context(), caseID)
		if err != nil {
			respondServiceError(w, r, OpGetCase, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleGetDropTable returns a case's drop table with odds
// @Summary Get a case's drop table
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {array} domain.CaseSlot
// @Failure 404 {object} ErrorResponse
// @Router /cases/{caseID}/droptable [get]
func HandleGetDropTable(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, ok := URLParamUUID(r, w, "caseID")
		if !ok {
			return
		}

		slots, err := svc.GetDropTable(r.Context(), caseID)
		if err != nil {
			respondServiceError(w, r, OpGetDropTable, err)
			return
		}
		respondJSON(w, http.StatusOK, slots)
	}
}

// HandleBuyCase purchases a case for the session user
// @Summary Buy a case
// @Description Debits the case price and grants one unopened case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 201 {object} BuyCaseResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{caseID}/buy [post]
func HandleBuyCase(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpBuyCase, err)
			return
		}

		caseID, ok := URLParamUUID(r, w, "caseID")
		if !ok {
			return
		}

		purchase, newBalance, err := svc.PurchaseCase(r.Context(), session, caseID)
		if err != nil {
			respondServiceError(w, r, OpBuyCase, err)
			return
		}

		log.Info("Case purchased", "user_id", session.UserID, "purchase_id", purchase.ID)

		respondJSON(w, http.StatusCreated, BuyCaseResponse{
			Purchase:   purchase,
			NewBalance: newBalance,
		})
	}
}

// HandleListPurchases lists the session user's purchased cases
// @Summary List purchased cases
// @Tags cases
// @Produce json
// @Param unopened query bool false "Only unopened cases"
// @Success 200 {array} domain.PurchasedCase
// @Security BearerAuth
// @Router /purchases [get]
func HandleListPurchases(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpListPurchases, err)
			return
		}

		unopenedOnly := GetOptionalQueryParam(r, "unopened", "false") == "true"

		purchases, err := svc.ListPurchases(r.Context(), session, unopenedOnly)
		if err != nil {
			respondServiceError(w, r, OpListPurchases, err)
			return
		}
		respondJSON(w, http.StatusOK, purchases)
	}
}

// HandleOpenCase opens a purchased case
// @Summary Open a purchased case
// @Description Consumes the purchase, draws a skin, and returns the reel to animate
// @Tags cases
// @Produce json
// @Param purchaseID path string true "Purchase ID"
// @Param viewport query int false "Viewport width in px for the reel target offset"
// @Success 200 {object} OpenCaseResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{purchaseID}/open [post]
func HandleOpenCase(svc caseopening.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpOpenCase, err)
			return
		}

		purchaseID, ok := URLParamUUID(r, w, "purchaseID")
		if !ok {
			return
		}

		viewport, err := strconv.Atoi(GetOptionalQueryParam(r, "viewport", strconv.Itoa(reel.DefaultViewportWidth)))
		if err != nil || viewport <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		result, strip, err := svc.OpenCase(r.Context(), session, purchaseID)
		if err != nil {
			respondServiceError(w, r, OpOpenCase, err)
			return
		}

		log.Info("Case opened",
			"user_id", session.UserID,
			"purchase_id", purchaseID,
			"skin", result.Skin.Name,
			"rarity", result.Skin.Rarity)

		respondJSON(w, http.StatusOK, OpenCaseResponse{
			Result:       result,
			Reel:         strip,
			TargetOffset: strip.TargetOffset(viewport),
		})
	}
}
