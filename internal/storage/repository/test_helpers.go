package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, email, username, passwordHash string, permissions []string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, username, password_hash, permissions)
		VALUES ($1, $2, $3, string_to_array($4, ',')) RETURNING uid`,
		email, username, passwordHash, strings.Join(permissions, ",")).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateItem создает тестовый товар и возвращает его ID
func (f *TestDataFactory) CreateItem(t *testing.T, title string, price int, ownerUID string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO items (title, description, price, owner_uid)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		title, "test item", price, ownerUID).Scan(&id)
	require.NoError(t, err)
	return id
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS cart_items CASCADE;
        DROP TABLE IF EXISTS items CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            username TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            permissions TEXT[] NOT NULL DEFAULT '{USER}',
            reset_token TEXT,
            reset_token_expiry TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            CHECK ((reset_token IS NULL) = (reset_token_expiry IS NULL))
        );

        CREATE TABLE items (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price INTEGER NOT NULL CHECK (price > 0),
            owner_uid UUID NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE cart_items (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
            item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
            quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
            UNIQUE (user_uid, item_id)
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if err := storage.DB.Close(); err != nil {
			t.Logf("failed to close db: %s", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}
