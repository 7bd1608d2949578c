package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/repositories"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrEmailTaken         = errors.New("email address already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserReader defines read-only operations on the user store.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations on the user store.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) error
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// registeredEvent is the payload published after a successful creation.
type registeredEvent struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegistrationService owns the server side of the registration flow:
// uniqueness, credential hashing, persistence and event publishing.
// Request bodies reaching it have already passed the validation
// middleware; the store's uniqueness guarantee remains authoritative.
type RegistrationService struct {
	reader      UserReader
	writer      UserWriter
	kafkaWriter KafkaWriter
}

// NewRegistrationService creates a new RegistrationService instance.
// kafkaWriter may be nil, which disables event publishing.
func NewRegistrationService(reader UserReader, writer UserWriter, kafkaWriter KafkaWriter) *RegistrationService {
	return &RegistrationService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user from an already-validated request. The
// email is normalized before the uniqueness check; the plaintext
// password is hashed here and never stored or logged.
func (svc *RegistrationService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserDB, error) {
	email := validation.Normalize(req.Email)

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("registration rejected, email taken", "email", email)
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	now := time.Now().UTC()
	user := models.UserDB{
		UserID:       uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		// A concurrent insert past the pre-check: the store's verdict wins.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			logger.Log.Infow("registration lost insert race", "email", email)
			return nil, ErrEmailTaken
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	svc.publishRegistered(ctx, user)
	return &user, nil
}

// publishRegistered emits the user.registered event. Failures are
// logged and swallowed: publishing is not part of the registration
// contract.
func (svc *RegistrationService) publishRegistered(ctx context.Context, user models.UserDB) {
	if svc.kafkaWriter == nil {
		logger.Log.Debugw("kafka writer not configured, skipping publish", "user_id", user.UserID)
		return
	}

	data, err := json.Marshal(registeredEvent{
		ID:        user.UserID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		logger.Log.Errorw("failed to marshal registration event", "user_id", user.UserID, "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(user.Email),
		Value: data,
	}
	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish registration event", "user_id", user.UserID, "err", err)
		return
	}
	logger.Log.Infow("registration event published", "user_id", user.UserID)
}

// List returns all registered users.
func (svc *RegistrationService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// GetByEmail returns the user with the given email or ErrUserNotFound.
func (svc *RegistrationService) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, validation.Normalize(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the user with the given email. ErrUserNotFound is
// returned when nothing was deleted.
func (svc *RegistrationService) Delete(ctx context.Context, email string) error {
	deleted, err := svc.writer.DeleteByEmail(ctx, validation.Normalize(email))
	if err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	logger.Log.Infow("user deleted", "email", validation.Normalize(email))
	return nil
}
