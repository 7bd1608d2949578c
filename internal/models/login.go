package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email address
	// required: true
	// example: john.doe@gmail.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Str0ng!pass
	Password string `json:"password"`
}

// TokenData carries the issued JWT on successful login.
// swagger:model TokenData
type TokenData struct {
	// Signed JWT
	Token string `json:"token"`
}
