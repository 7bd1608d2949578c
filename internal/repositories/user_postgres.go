package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// UserReadRepository reads users from Postgres.
type UserReadRepository struct {
	db *sqlx.DB
}

// NewUserReadRepository creates a read repository over the given database.
func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given normalized email, or nil
// when no such user exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Debugw("user lookup",
		"query", strings.Join(strings.Fields(query), " "),
		"email", email,
		"found", err == nil,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every registered user ordered by creation time.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, first_name, last_name, email, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at
	`

	var users []models.UserDB
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		logger.Log.Errorw("user listing failed", "err", err)
		return nil, err
	}
	return users, nil
}

// UserWriteRepository writes users to Postgres.
type UserWriteRepository struct {
	db *sqlx.DB
}

// NewUserWriteRepository creates a write repository over the given database.
func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A unique violation on the email column is
// reported as ErrDuplicateEmail so a concurrent insert racing past the
// pre-check still surfaces as the registered-email outcome.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) error {
	const query = `
		INSERT INTO users (user_id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.UserID, user.FirstName, user.LastName, user.Email,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)

	logger.Log.Debugw("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", user.UserID,
		"email", user.Email,
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// DeleteByEmail removes the user with the given normalized email and
// reports whether a row was deleted.
func (r *UserWriteRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	const query = `DELETE FROM users WHERE email = $1`

	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		logger.Log.Errorw("user delete failed", "email", email, "err", err)
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
