package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) *sqlx.DB {
	t.Helper()

	// Provider discovery panics on hosts without a container runtime, so
	// the health check has to run before any container request is built.
	tc.SkipIfProviderIsNotHealthy(t)

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("container runtime unavailable: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")
	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestUserRepository_Postgres_RoundTrip(t *testing.T) {
	db := setupPostgresContainer(t)
	ctx := context.Background()

	writer := NewUserWriteRepository(db)
	reader := NewUserReadRepository(db)

	user := testUser("john.doe@gmail.com")
	assert.NoError(t, writer.Save(ctx, user))

	got, err := reader.GetByEmail(ctx, "john.doe@gmail.com")
	assert.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)

	users, err := reader.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	deleted, err := writer.DeleteByEmail(ctx, "john.doe@gmail.com")
	assert.NoError(t, err)
	assert.True(t, deleted)

	got, err = reader.GetByEmail(ctx, "john.doe@gmail.com")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// The unique constraint, not the pre-check, arbitrates concurrent
// creates: exactly one insert wins and the loser sees the duplicate
// error shape.
func TestUserRepository_Postgres_ConcurrentCreate(t *testing.T) {
	db := setupPostgresContainer(t)
	writer := NewUserWriteRepository(db)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = writer.Save(context.Background(), testUser("race@gmail.com"))
		}(i)
	}
	wg.Wait()

	var wins, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrDuplicateEmail):
			duplicates++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, duplicates)
}
