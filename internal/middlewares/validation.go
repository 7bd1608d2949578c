package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

type registerRequestKey struct{}

// ValidationMiddleware is the server-side mirror of the signup form's
// rule set. It decodes and normalizes the registration body, runs every
// rule of the configured variant, and rejects invalid requests before
// the handler (and the store behind it) is ever reached. The rules and
// messages are the exact ones the client evaluates.
func ValidationMiddleware(rules *validation.Rules) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req models.RegisterRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.MessageResponse{
					Message: "Invalid request body",
				})
				return
			}

			normalize(&req)

			errs := rules.Evaluate(validation.Form{
				Values: map[string]string{
					validation.FieldFirstName:       req.FirstName,
					validation.FieldLastName:        req.LastName,
					validation.FieldEmail:           req.Email,
					validation.FieldPassword:        req.Password,
					validation.FieldConfirmPassword: req.ConfirmPassword,
					validation.FieldDateOfBirth:     req.DateOfBirth,
				},
				AcceptTerms: req.AcceptTerms,
			})
			if len(errs) > 0 {
				writeFieldErrors(w, rules.Variant(), errs)
				return
			}

			ctx := setRegisterRequestToContext(r.Context(), req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// normalize trims every string field and lower-cases the email. The
// password fields are deliberately left untouched: whitespace may be
// part of the credential.
func normalize(req *models.RegisterRequest) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = validation.Normalize(req.Email)
	req.DateOfBirth = strings.TrimSpace(req.DateOfBirth)
}

// writeFieldErrors responds with the structured error list in field
// order. An email rejected as already registered is a conflict.
func writeFieldErrors(w http.ResponseWriter, variant validation.Variant, errs map[string]string) {
	status := http.StatusBadRequest
	if errs[validation.FieldEmail] == validation.MsgEmailTaken {
		status = http.StatusConflict
	}

	fieldErrs := make([]models.FieldError, 0, len(errs))
	for _, field := range variant.Fields() {
		if msg, ok := errs[field]; ok {
			fieldErrs = append(fieldErrs, models.FieldError{Field: field, Message: msg})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.FieldErrorsResponse{Errors: fieldErrs})
}

// setRegisterRequestToContext stores the normalized body in the context.
func setRegisterRequestToContext(ctx context.Context, req models.RegisterRequest) context.Context {
	return context.WithValue(ctx, registerRequestKey{}, req)
}

// GetRegisterRequestFromContext retrieves the normalized registration
// body placed there by ValidationMiddleware.
func GetRegisterRequestFromContext(ctx context.Context) (models.RegisterRequest, bool) {
	req, ok := ctx.Value(registerRequestKey{}).(models.RegisterRequest)
	return req, ok
}
