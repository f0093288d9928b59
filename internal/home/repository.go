package home

import (
	"context"
	"sync"
)

// Repository provides the landing page content.
type Repository interface {
	Get(ctx context.Context) (Content, error)
}

// InMemoryRepository serves content held in memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	content Content
}

func NewInMemoryRepository(seed Content) *InMemoryRepository {
	return &InMemoryRepository{content: seed}
}

func (r *InMemoryRepository) Get(ctx context.Context) (Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.content
	c.Highlights = append([]Highlight(nil), r.content.Highlights...)
	return c, nil
}

