package models

// RegisterResponse is the envelope for a successful registration.
// swagger:model RegisterResponse
type RegisterResponse struct {
	Success bool       `json:"success"`
	Data    PublicUser `json:"data"`
}

// UsersResponse is the envelope for a user listing.
// swagger:model UsersResponse
type UsersResponse struct {
	Success bool         `json:"success"`
	Data    []PublicUser `json:"data"`
}

// TokenResponse is the envelope for a successful login.
// swagger:model TokenResponse
type TokenResponse struct {
	Success bool      `json:"success"`
	Data    TokenData `json:"data"`
}

// FieldErrorsResponse is the envelope for field-level validation failures.
// swagger:model FieldErrorsResponse
type FieldErrorsResponse struct {
	Success bool         `json:"success"`
	Errors  []FieldError `json:"errors"`
}

// MessageResponse is the envelope for non-field outcomes (deletes, generic errors).
// swagger:model MessageResponse
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the liveness probe body.
// swagger:model HealthResponse
type HealthResponse struct {
	Status string `json:"status"`
}
