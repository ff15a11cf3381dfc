package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/config"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/database"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/redis"
)

// exerciseBackend runs the same round trips against any Backend
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, b.ClearSession(ctx))
	session, err := b.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	users := []contracts.User{
		{ID: "1", Name: "A", Email: "a@example.com", Password: "123456"},
		{ID: "2", Name: "B", Email: "b@example.com", Password: "654321", IsVerified: true},
	}
	require.NoError(t, b.SaveUsers(ctx, users))

	loaded, err := b.LoadUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, loaded)

	require.NoError(t, b.SaveSession(ctx, users[1].Public()))
	session, err = b.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "2", session.ID)
	assert.Empty(t, session.Password)

	require.NoError(t, b.ClearSession(ctx))
	session, err = b.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestMemoryBackend_CopiesOnLoad(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, b.SaveUsers(ctx, []contracts.User{{ID: "1", Email: "a@example.com"}}))

	loaded, _ := b.LoadUsers(ctx)
	loaded[0].IsVerified = true

	again, _ := b.LoadUsers(ctx)
	assert.False(t, again[0].IsVerified)
}

func TestNewRedisBackend_RequiresEnabledClient(t *testing.T) {
	client, err := redis.New(&config.Config{})
	require.NoError(t, err)

	_, err = NewRedisBackend(client, "test")
	assert.Error(t, err)
}

func TestRedisBackend_Integration(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" || testing.Short() {
		t.Skip("REDIS_HOST not set")
	}

	cfg := &config.Config{}
	cfg.Redis.Enabled = true
	cfg.Redis.Host = host
	cfg.Redis.Port = "6379"
	if port := os.Getenv("REDIS_PORT"); port != "" {
		cfg.Redis.Port = port
	}

	client, err := redis.New(cfg)
	require.NoError(t, err)
	defer client.Close()

	b, err := NewRedisBackend(client, fmt.Sprintf("test-%d", time.Now().UnixNano()))
	require.NoError(t, err)
	exerciseBackend(t, b)
}

func TestPostgresBackend_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" || testing.Short() {
		t.Skip("DATABASE_URL not set")
	}

	cfg := &config.Config{}
	cfg.Database.URL = url
	cfg.Database.MaxConns = 2
	cfg.Database.MinConns = 1

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db.Pool))

	b := NewPostgresBackend(db.Pool, fmt.Sprintf("test_%d", time.Now().UnixNano()))
	exerciseBackend(t, b)
}
