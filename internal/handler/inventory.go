package handler

import (
	"net/http"

	"github.com/casefall/casefall/internal/auth"
	"github.com/casefall/casefall/internal/economy"
	"github.com/casefall/casefall/internal/logger"
)

// HandleGetInventory lists the session user's skins
// @Summary List inventory
// @Tags inventory
// @Produce json
// @Param include_sold query bool false "Include sold items"
// @Success 200 {array} domain.InventoryItem
// @Security BearerAuth
// @Router /inventory [get]
func HandleGetInventory(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}

		includeSold := GetOptionalQueryParam(r, "include_sold", "false") == "true"

		items, err := svc.ListInventory(r.Context(), session, includeSold)
		if err != nil {
			respondServiceError(w, r, OpGetInventory, err)
			return
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleSellItem sells one of the session user's skins back for its value
// @Summary Sell a skin
// @Description Credits the item's value and marks it sold
// @Tags inventory
// @Produce json
// @Param itemID path string true "Inventory item ID"
// @Success 200 {object} economy.SellResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{itemID}/sell [post]
func HandleSellItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpSellItem, err)
			return
		}

		itemID, ok := URLParamUUID(r, w, "itemID")
		if !ok {
			return
		}

		result, err := svc.SellItem(r.Context(), session, itemID)
		if err != nil {
			respondServiceError(w, r, OpSellItem, err)
			return
		}

		log.Info("Item sold",
			"user_id", session.UserID,
			"item_id", itemID,
			"proceeds", result.Proceeds)

		respondJSON(w, http.StatusOK, result)
	}
}

// HandlePriceCheck quotes a sale price for one of the session user's skins
// @Summary Price check a skin
// @Tags inventory
// @Produce json
// @Param itemID path string true "Inventory item ID"
// @Success 200 {object} economy.PriceQuote
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/{itemID}/price [get]
func HandlePriceCheck(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFromContext(r.Context())
		if err != nil {
			respondServiceError(w, r, OpPriceCheck, err)
			return
		}

		itemID, ok := URLParamUUID(r, w, "itemID")
		if !ok {
			return
		}

		quote, err := svc.PriceCheck(r.Context(), session, itemID)
		if err != nil {
			respondServiceError(w, r, OpPriceCheck, err)
			return
		}
		respondJSON(w, http.StatusOK, quote)
	}
}
