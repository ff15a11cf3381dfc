package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/redis"
)

// RedisBackend stores users and session as two JSON documents without expiry
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend creates a Redis backend. The client must be enabled.
func NewRedisBackend(client *redis.Client, prefix string) (*RedisBackend, error) {
	if client == nil || !client.Enabled() {
		return nil, fmt.Errorf("redis session backend requires an enabled redis client")
	}
	return &RedisBackend{client: client, prefix: prefix}, nil
}

func (b *RedisBackend) usersKey() string   { return b.prefix + ":users" }
func (b *RedisBackend) sessionKey() string { return b.prefix + ":session" }

func (b *RedisBackend) LoadUsers(ctx context.Context) ([]contracts.User, error) {
	var users []contracts.User
	found, err := b.get(ctx, b.usersKey(), &users)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !found {
		return nil, nil
	}
	return users, nil
}

func (b *RedisBackend) SaveUsers(ctx context.Context, users []contracts.User) error {
	if err := b.set(ctx, b.usersKey(), users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (b *RedisBackend) LoadSession(ctx context.Context) (*contracts.User, error) {
	var user contracts.User
	found, err := b.get(ctx, b.sessionKey(), &user)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (b *RedisBackend) SaveSession(ctx context.Context, user contracts.User) error {
	if err := b.set(ctx, b.sessionKey(), user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (b *RedisBackend) ClearSession(ctx context.Context) error {
	if err := b.client.Redis().Del(ctx, b.sessionKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (b *RedisBackend) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := b.client.Redis().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (b *RedisBackend) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.client.Redis().Set(ctx, key, data, 0).Err()
}
