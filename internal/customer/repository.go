package customer

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound           = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
)

// Repository persists customers together with their password hashes.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	// Create stores the customer and its password hash atomically.
	Create(ctx context.Context, email, passwordHash string) error
	GetPasswordHash(ctx context.Context, email string) (string, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// local runs without a database.
type InMemoryRepository struct {
	mu        sync.RWMutex
	passwords map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{passwords: make(map[string]string)}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Customer, 0, len(r.passwords))
	for email := range r.passwords {
		out = append(out, Customer{Email: email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.passwords[email]; ok {
		return ErrEmailExists
	}
	r.passwords[email] = passwordHash
	return nil
}

func (r *InMemoryRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, ok := r.passwords[email]
	if !ok {
		return "", ErrNotFound
	}
	return hash, nil
}
