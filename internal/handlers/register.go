package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/middlewares"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/services"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserDB, error)
}

// NewRegisterHandler returns an HTTP handler for user registration. It
// must sit behind ValidationMiddleware, which supplies the normalized,
// validated request body through the context.
// @Summary Register a new user
// @Description Creates a new user account from a validated signup form. The email must be unique; the password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.RegisterResponse "User successfully registered"
// @Failure 400 {object} models.FieldErrorsResponse "Field validation failed"
// @Failure 409 {object} models.FieldErrorsResponse "Email already registered"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		req, ok := middlewares.GetRegisterRequestFromContext(r.Context())
		if !ok {
			logger.Log.Errorw("register handler reached without validated body")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(models.FieldErrorsResponse{
					Errors: []models.FieldError{
						{Field: validation.FieldEmail, Message: validation.MsgEmailTaken},
					},
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RegisterResponse{
			Success: true,
			Data:    user.Public(),
		})
	}
}
