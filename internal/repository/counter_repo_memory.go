package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pagehits/counthub/internal/model"
)

type memoryCounterRepository struct {
	mu       sync.Mutex
	counters map[string]*model.Counter
}

// NewMemoryCounterRepository returns a CounterRepository backed by a
// process-local map. Used for local dev and tests; same contract as the
// Postgres implementation.
func NewMemoryCounterRepository() CounterRepository {
	return &memoryCounterRepository{
		counters: make(map[string]*model.Counter),
	}
}

func (r *memoryCounterRepository) GetOrCreate(_ context.Context, name string) (*model.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		return snapshot(c), nil
	}
	c := newCounter(name, 0)
	r.counters[name] = c
	return snapshot(c), nil
}

func (r *memoryCounterRepository) Increment(_ context.Context, name string) (*model.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		c.Count++
		c.UpdatedAt = time.Now()
		return snapshot(c), nil
	}
	c := newCounter(name, 1)
	r.counters[name] = c
	return snapshot(c), nil
}

func (r *memoryCounterRepository) Reset(_ context.Context, name string) (*model.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.counters[name]
	if !ok {
		return &model.Counter{Name: name}, nil
	}
	c.Count = 0
	c.UpdatedAt = time.Now()
	return snapshot(c), nil
}

func newCounter(name string, count int64) *model.Counter {
	now := time.Now()
	return &model.Counter{
		ID:        uuid.New(),
		Name:      name,
		Count:     count,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func snapshot(c *model.Counter) *model.Counter {
	cp := *c
	return &cp
}
