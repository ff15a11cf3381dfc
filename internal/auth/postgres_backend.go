package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// Schema creates the document table used by PostgresBackend
const Schema = `
	CREATE SCHEMA IF NOT EXISTS app;

	CREATE TABLE IF NOT EXISTS app.documents (
		name       TEXT PRIMARY KEY,
		body       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// PostgresBackend stores users and session as named JSONB documents
// ⭐ SSOT: app.documents is written here only
type PostgresBackend struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewPostgresBackend creates a Postgres backend
func NewPostgresBackend(pool *pgxpool.Pool, prefix string) *PostgresBackend {
	return &PostgresBackend{pool: pool, prefix: prefix}
}

// Migrate creates the document table if missing
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	return nil
}

func (b *PostgresBackend) usersDoc() string   { return b.prefix + "_users" }
func (b *PostgresBackend) sessionDoc() string { return b.prefix + "_session" }

func (b *PostgresBackend) LoadUsers(ctx context.Context) ([]contracts.User, error) {
	var users []contracts.User
	if _, err := b.load(ctx, b.usersDoc(), &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (b *PostgresBackend) SaveUsers(ctx context.Context, users []contracts.User) error {
	if users == nil {
		users = []contracts.User{}
	}
	if err := b.save(ctx, b.usersDoc(), users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (b *PostgresBackend) LoadSession(ctx context.Context) (*contracts.User, error) {
	var user contracts.User
	found, err := b.load(ctx, b.sessionDoc(), &user)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (b *PostgresBackend) SaveSession(ctx context.Context, user contracts.User) error {
	if err := b.save(ctx, b.sessionDoc(), user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (b *PostgresBackend) ClearSession(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `DELETE FROM app.documents WHERE name = $1`, b.sessionDoc())
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (b *PostgresBackend) load(ctx context.Context, name string, dest interface{}) (bool, error) {
	var body []byte
	err := b.pool.QueryRow(ctx, `SELECT body FROM app.documents WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (b *PostgresBackend) save(ctx context.Context, name string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app.documents (name, body)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = NOW()
	`
	_, err = b.pool.Exec(ctx, query, name, body)
	return err
}
