package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode into a pooled buffer first so a marshal failure cannot
	// leave a half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgEmailTakenError      = "That email is already registered"
	ErrMsgUsernameTakenError   = "That username is already taken"
	ErrMsgBadCredentialError   = "Invalid email or password"
	ErrMsgUnauthenticatedError = "Authentication required"

	ErrMsgCaseNotFoundError   = "Case not found"
	ErrMsgEmptyDropTableError = "Case cannot be opened right now"

	ErrMsgPurchaseNotFoundError = "Purchased case not found"
	ErrMsgAlreadyOpenedError    = "That case has already been opened"

	ErrMsgNotEnoughMoneyError = "Not enough money"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgAlreadySoldError    = "That item has already been sold"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal error details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, ErrMsgEmailTakenError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrBadCredential):
		return http.StatusUnauthorized, ErrMsgBadCredentialError
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrMsgUnauthenticatedError
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, ErrMsgCaseNotFoundError
	case errors.Is(err, domain.ErrEmptyDropTable):
		return http.StatusConflict, ErrMsgEmptyDropTableError
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return http.StatusNotFound, ErrMsgPurchaseNotFoundError
	case errors.Is(err, domain.ErrCaseAlreadyOpened):
		return http.StatusConflict, ErrMsgAlreadyOpenedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrAlreadySold):
		return http.StatusConflict, ErrMsgAlreadySoldError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
