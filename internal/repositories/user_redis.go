package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
)

const (
	userKeyPrefix = "user:"
	userIndexKey  = "users"
)

// RedisUserRepository stores users in Redis, one JSON value per user
// keyed by normalized email plus a set index for listing. SETNX makes
// the create atomic, so two concurrent saves for the same email resolve
// to exactly one winner.
type RedisUserRepository struct {
	client *redis.Client
}

// NewRedisUserRepository creates a repository over the given client.
func NewRedisUserRepository(client *redis.Client) *RedisUserRepository {
	return &RedisUserRepository{client: client}
}

// GetByEmail returns the user stored under the normalized email, or nil
// when absent.
func (r *RedisUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	val, err := r.client.Get(ctx, userKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.UserDB
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every registered user.
func (r *RedisUserRepository) List(ctx context.Context) ([]models.UserDB, error) {
	emails, err := r.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, err
	}

	users := make([]models.UserDB, 0, len(emails))
	for _, email := range emails {
		user, err := r.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

// Save creates the user's key with SETNX. A key that already exists
// means another write claimed the email first; that loser gets
// ErrDuplicateEmail, never a raw storage error.
func (r *RedisUserRepository) Save(ctx context.Context, user models.UserDB) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	created, err := r.client.SetNX(ctx, userKeyPrefix+user.Email, data, 0).Result()
	if err != nil {
		logger.Log.Errorw("user insert failed", "email", user.Email, "err", err)
		return err
	}
	if !created {
		return ErrDuplicateEmail
	}

	if err := r.client.SAdd(ctx, userIndexKey, user.Email).Err(); err != nil {
		// Roll back the value key so the index and data stay consistent.
		r.client.Del(ctx, userKeyPrefix+user.Email)
		return err
	}
	return nil
}

// DeleteByEmail removes the user and its index entry, reporting whether
// the user existed.
func (r *RedisUserRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	deleted, err := r.client.Del(ctx, userKeyPrefix+email).Result()
	if err != nil {
		return false, err
	}
	if err := r.client.SRem(ctx, userIndexKey, email).Err(); err != nil {
		return false, err
	}
	return deleted > 0, nil
}
