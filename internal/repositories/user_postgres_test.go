package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func userColumns() []string {
	return []string{"user_id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at"}
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("john.doe@gmail.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id, "John", "Doe", "john.doe@gmail.com", "hash", now, now))

	user, err := repo.GetByEmail(context.Background(), "john.doe@gmail.com")
	assert.NoError(t, err)
	assert.Equal(t, id, user.UserID)
	assert.Equal(t, "john.doe@gmail.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@gmail.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.GetByEmail(context.Background(), "ghost@gmail.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users\s+ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(uuid.New(), "John", "Doe", "john@gmail.com", "hash", now, now).
			AddRow(uuid.New(), "Jane", "Doe", "jane@gmail.com", "hash", now, now))

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	user := models.UserDB{
		UserID:       uuid.New(),
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john.doe@gmail.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.UserID, user.FirstName, user.LastName, user.Email,
			user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Save(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Save(context.Background(), models.UserDB{Email: "taken@gmail.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserWriteRepository_Save_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("connection reset"))

	err := repo.Save(context.Background(), models.UserDB{Email: "x@gmail.com"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserWriteRepository_DeleteByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE email = \$1`).
		WithArgs("john.doe@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByEmail(context.Background(), "john.doe@gmail.com")
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestUserWriteRepository_DeleteByEmail_Absent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)

	mock.ExpectExec(`DELETE FROM users WHERE email = \$1`).
		WithArgs("ghost@gmail.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByEmail(context.Background(), "ghost@gmail.com")
	assert.NoError(t, err)
	assert.False(t, deleted)
}
