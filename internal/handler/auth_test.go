package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/domain"
)

func TestHandleRegister(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		svc := new(MockUserService)
		u := &domain.User{ID: uuid.New(), Username: "player1", Balance: domain.StartingBalance}
		svc.On("Register", mock.Anything, "player1", "p1@example.com", "hunter2hunter2").
			Return(u, "tok123", nil)

		body := `{"username":"player1","email":"p1@example.com","password":"hunter2hunter2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		HandleRegister(svc)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok123", resp.Token)
		assert.Equal(t, "player1", resp.User.Username)
		assert.Equal(t, domain.StartingBalance, resp.User.Balance)
		svc.AssertExpectations(t)
	})

	t.Run("rejects invalid payload before the service", func(t *testing.T) {
		svc := new(MockUserService)

		body := `{"username":"p!","email":"not-an-email","password":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		HandleRegister(svc)(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "username")
		assert.Contains(t, resp.Fields, "email")
		assert.Contains(t, resp.Fields, "password")
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps a taken email to 409", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", domain.ErrEmailTaken)

		body := `{"username":"player1","email":"p1@example.com","password":"hunter2hunter2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		HandleRegister(svc)(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgEmailTakenError)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("returns token on valid credentials", func(t *testing.T) {
		svc := new(MockUserService)
		u := &domain.User{ID: uuid.New(), Username: "player1"}
		svc.On("Login", mock.Anything, "p1@example.com", "hunter2hunter2").
			Return(u, "tok456", nil)

		body := `{"email":"p1@example.com","password":"hunter2hunter2"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		HandleLogin(svc)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok456", resp.Token)
	})

	t.Run("maps bad credentials to 401", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", domain.ErrBadCredential)

		body := `{"email":"p1@example.com","password":"wrong-password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		HandleLogin(svc)(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgBadCredentialError)
	})
}
