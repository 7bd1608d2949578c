package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
)

// RegisterClient calls the registration endpoint over HTTP. It is the
// production Registrar for the signup form core.
type RegisterClient struct {
	baseURL string
	client  *http.Client
}

// NewRegisterClient creates a client for the given base URL. A nil
// httpClient falls back to http.DefaultClient; timeouts belong to the
// injected client, not to this layer.
func NewRegisterClient(baseURL string, httpClient *http.Client) *RegisterClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RegisterClient{baseURL: baseURL, client: httpClient}
}

// Register POSTs the registration payload. A 201 yields the created
// user; 400 and 409 yield the server's structured field errors; any
// other outcome is returned as an error.
func (c *RegisterClient) Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, []models.FieldError, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		logger.Log.Errorw("register request failed", "err", err)
		return nil, nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var out models.RegisterResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, nil, err
		}
		return &out.Data, nil, nil

	case http.StatusBadRequest, http.StatusConflict:
		var out models.FieldErrorsResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, nil, err
		}
		if len(out.Errors) == 0 {
			return nil, nil, fmt.Errorf("registration rejected with status %d", resp.StatusCode)
		}
		return nil, out.Errors, nil

	default:
		logger.Log.Errorw("unexpected registration response", "status", resp.StatusCode)
		return nil, nil, fmt.Errorf("unexpected status %d from registration endpoint", resp.StatusCode)
	}
}
