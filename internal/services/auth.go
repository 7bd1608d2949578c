package services

import (
	"context"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// TokenGenerator defines an interface for issuing signed tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, subject string) (string, error)
}

// AuthService authenticates registered users and issues tokens.
type AuthService struct {
	reader UserReader
	tokens TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, tokens TokenGenerator) *AuthService {
	return &AuthService{reader: reader, tokens: tokens}
}

// Login verifies the credentials and returns a signed token. Unknown
// email and wrong password both map to ErrInvalidCredentials so the
// response does not reveal which one failed.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	normalized := validation.Normalize(email)

	user, err := svc.reader.GetByEmail(ctx, normalized)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login rejected, unknown email", "email", normalized)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login rejected, bad credentials", "email", normalized)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}
	return token, nil
}
