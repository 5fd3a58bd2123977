package handler

import (
	"net/http"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/logger"
	"github.com/casefall/casefall/internal/user"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the session token and the account it belongs to
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// HandleRegister creates a new account and returns a session token
// @Summary Register a new account
// @Description Create an account with the starting balance and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func HandleRegister(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpRegister); err != nil {
			return
		}

		u, token, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, OpRegister, err)
			return
		}

		log.Info("User registered", "user_id", u.ID, "username", u.Username)

		respondJSON(w, http.StatusCreated, AuthResponse{Token: token, User: u})
	}
}

// HandleLogin authenticates an account and returns a session token
// @Summary Log in
// @Description Authenticate with email and password; grants the daily reward when due
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func HandleLogin(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpLogin); err != nil {
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, OpLogin, err)
			return
		}

		log.Info("User logged in", "user_id", u.ID, "username", u.Username)

		respondJSON(w, http.StatusOK, AuthResponse{Token: token, User: u})
	}
}
