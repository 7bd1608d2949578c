package models

// RegisterRequest represents the JSON body for user registration.
// Which optional fields are present depends on the signup flow variant.
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Given name
	// example: John
	FirstName string `json:"firstName,omitempty"`

	// Family name
	// example: Doe
	LastName string `json:"lastName,omitempty"`

	// Email address
	// required: true
	// example: john.doe@gmail.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Str0ng!pass
	Password string `json:"password"`

	// Password confirmation, must match Password when present
	// example: Str0ng!pass
	ConfirmPassword string `json:"confirmPassword,omitempty"`

	// Date of birth in YYYY-MM-DD form
	// example: 1990-04-23
	DateOfBirth string `json:"dateOfBirth,omitempty"`

	// Terms and conditions acceptance flag
	// example: true
	AcceptTerms bool `json:"acceptTerms,omitempty"`
}

// FieldError attaches a validation failure message to one named field.
// swagger:model FieldError
type FieldError struct {
	// Field name as it appears in the request body
	// example: email
	Field string `json:"field"`

	// Human-readable failure message
	// example: Only gmail.com addresses are accepted
	Message string `json:"message"`
}
