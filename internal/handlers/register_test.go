package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/clock"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/middlewares"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/services"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

func serverRules() *validation.Rules {
	taken := func(email string) bool { return email == "test@gmail.com" }
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	return validation.NewRules(validation.NamesVariant, taken, &clock.FixedClock{Instant: now})
}

func validBody() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@gmail.com",
		Password:  "Secur3?pass",
	}
}

// The register handler is tested behind its validation middleware, the
// way it is mounted in the router.
func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         models.RegisterRequest
		rawBody      string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
	}{
		{
			name: "success",
			body: validBody(),
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), validBody()).
					Return(&models.UserDB{
						UserID:    uuid.New(),
						FirstName: "John",
						LastName:  "Doe",
						Email:     "john.doe@gmail.com",
						CreatedAt: time.Now(),
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "email taken",
			body: validBody(),
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, services.ErrEmailTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "internal error",
			body: validBody(),
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "validation blocks the service",
			body:         models.RegisterRequest{Email: "john@example.com", Password: "short"},
			expectedCode: http.StatusBadRequest,
			// No Register expectation: the middleware must not call through.
		},
		{
			name:         "invalid json",
			rawBody:      "{invalid json}",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := middlewares.ValidationMiddleware(serverRules())(NewRegisterHandler(mockSvc))

			var body []byte
			if tt.rawBody != "" {
				body = []byte(tt.rawBody)
			} else {
				body, _ = json.Marshal(tt.body)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body)))

			assert.Equal(t, tt.expectedCode, rr.Code)

			switch tt.expectedCode {
			case http.StatusCreated:
				var resp models.RegisterResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "john.doe@gmail.com", resp.Data.Email)
			case http.StatusConflict:
				var resp models.FieldErrorsResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, []models.FieldError{
					{Field: validation.FieldEmail, Message: validation.MsgEmailTaken},
				}, resp.Errors)
			}
		})
	}
}

func TestRegisterHandler_WithoutMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRegisterHandler(NewMockRegisterer(ctrl))

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodPost, "/register", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
