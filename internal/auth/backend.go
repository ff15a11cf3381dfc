package auth

import (
	"context"
	"sync"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
)

// Backend persists the users collection and the current session record.
// Both are read and written whole; there are no partial updates.
type Backend interface {
	LoadUsers(ctx context.Context) ([]contracts.User, error)
	SaveUsers(ctx context.Context, users []contracts.User) error
	// LoadSession returns nil when nobody is logged in
	LoadSession(ctx context.Context) (*contracts.User, error)
	SaveSession(ctx context.Context, user contracts.User) error
	ClearSession(ctx context.Context) error
}

// MemoryBackend keeps everything in process memory
type MemoryBackend struct {
	mu      sync.Mutex
	users   []contracts.User
	session *contracts.User
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) LoadUsers(ctx context.Context) ([]contracts.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]contracts.User(nil), b.users...), nil
}

func (b *MemoryBackend) SaveUsers(ctx context.Context, users []contracts.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append([]contracts.User(nil), users...)
	return nil
}

func (b *MemoryBackend) LoadSession(ctx context.Context) (*contracts.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil, nil
	}
	u := *b.session
	return &u, nil
}

func (b *MemoryBackend) SaveSession(ctx context.Context, user contracts.User) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = &user
	return nil
}

func (b *MemoryBackend) ClearSession(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = nil
	return nil
}
