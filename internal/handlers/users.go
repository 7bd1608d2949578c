package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/middlewares"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/services"
)

// UserLister defines the listing interface consumed by the users handler.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserDeleter defines the delete interface consumed by the users handler.
type UserDeleter interface {
	Delete(ctx context.Context, email string) error
}

// UserGetter defines the lookup interface consumed by the me handler.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// NewListUsersHandler returns an HTTP handler listing all registered
// users without their credentials.
// @Summary List users
// @Description Returns every registered user; password hashes are never included
// @Tags users
// @Produce json
// @Success 200 {object} models.UsersResponse "Registered users"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			return
		}

		public := make([]models.PublicUser, 0, len(users))
		for _, u := range users {
			public = append(public, u.Public())
		}

		json.NewEncoder(w).Encode(models.UsersResponse{Success: true, Data: public})
	}
}

// NewDeleteUserHandler returns an HTTP handler removing a user by email.
// @Summary Delete a user
// @Description Removes the user registered under the given email
// @Tags users
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} models.MessageResponse "User deleted"
// @Failure 404 {object} models.MessageResponse "User not found"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /users/{email} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		email := chi.URLParam(r, "email")
		if err := svc.Delete(r.Context(), email); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "User not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			}
			return
		}

		json.NewEncoder(w).Encode(models.MessageResponse{Success: true, Message: "User deleted successfully"})
	}
}

// NewMeHandler returns an HTTP handler serving the authenticated user's
// profile. It must sit behind AuthMiddleware.
// @Summary Current user profile
// @Description Returns the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RegisterResponse "Authenticated user"
// @Failure 401 {object} models.MessageResponse "Unauthorized"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /me [get]
func NewMeHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		email := middlewares.GetSubjectFromContext(r.Context())
		user, err := svc.GetByEmail(r.Context(), email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				// The token outlived the account.
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Unauthorized"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
			}
			return
		}

		json.NewEncoder(w).Encode(models.RegisterResponse{Success: true, Data: user.Public()})
	}
}
