package middlewares

import (
	"context"
	"net/http"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
)

type subjectKey struct{}

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// AuthMiddleware validates the bearer token and stores its subject in
// the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			subject, err := tokener.GetSubject(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(setSubjectToContext(ctx, subject)))
		})
	}
}

// setSubjectToContext stores the authenticated subject in the context.
func setSubjectToContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// GetSubjectFromContext returns the authenticated subject, or an empty
// string when the request was not authenticated.
func GetSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey{}).(string)
	return subject
}
