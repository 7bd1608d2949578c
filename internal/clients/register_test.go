package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

func TestRegisterClient_Created(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)

		var req models.RegisterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "john.doe@gmail.com", req.Email)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RegisterResponse{
			Success: true,
			Data:    models.PublicUser{ID: id, Email: req.Email},
		})
	}))
	defer srv.Close()

	c := NewRegisterClient(srv.URL, srv.Client())
	user, fieldErrs, err := c.Register(context.Background(), models.RegisterRequest{
		Email:    "john.doe@gmail.com",
		Password: "Secur3?pass",
	})

	assert.NoError(t, err)
	assert.Nil(t, fieldErrs)
	assert.Equal(t, id, user.ID)
}

func TestRegisterClient_FieldErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusConflict} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(models.FieldErrorsResponse{
				Errors: []models.FieldError{{Field: validation.FieldEmail, Message: validation.MsgEmailTaken}},
			})
		}))

		c := NewRegisterClient(srv.URL, srv.Client())
		user, fieldErrs, err := c.Register(context.Background(), models.RegisterRequest{})

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, []models.FieldError{{Field: validation.FieldEmail, Message: validation.MsgEmailTaken}}, fieldErrs)
		srv.Close()
	}
}

func TestRegisterClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Internal server error"})
	}))
	defer srv.Close()

	c := NewRegisterClient(srv.URL, srv.Client())
	user, fieldErrs, err := c.Register(context.Background(), models.RegisterRequest{})

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Nil(t, fieldErrs)
}

func TestRegisterClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewRegisterClient(srv.URL, nil)
	_, _, err := c.Register(context.Background(), models.RegisterRequest{})
	assert.Error(t, err)
}
