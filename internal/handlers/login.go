package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate a registered user and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.TokenResponse "JWT returned"
// @Failure 400 {object} models.MessageResponse "Invalid request body"
// @Failure 401 {object} models.MessageResponse "Invalid email or password"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.MessageResponse{Message: "Invalid request body"})
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Invalid email or password"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			}
			return
		}

		json.NewEncoder(w).Encode(models.TokenResponse{
			Success: true,
			Data:    models.TokenData{Token: token},
		})
	}
}
