// In-memory round registry used by the HTTP API.
//
// Characteristics:
//   - Stores *game.Round values keyed by ID in a map.
//   - Concurrency-safe via RWMutex; the callback passed to Update runs under
//     the write lock, so a round is only ever touched by one request at a time.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/termle/internal/game"
)

// ErrNotFound is returned for unknown round IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines the registry interface for live rounds.
type Store interface {
	// Save adds or replaces a round.
	Save(ctx context.Context, id string, r *game.Round) error

	// View runs fn with shared access to the round; fn must not mutate it.
	View(ctx context.Context, id string, fn func(*game.Round) error) error

	// Update runs fn with exclusive access to the round.
	Update(ctx context.Context, id string, fn func(*game.Round) error) error

	// Sweep drops rounds created before cutoff and reports how many went.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	round   *game.Round
	created time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex
	rounds map[string]entry
	now    func() time.Time
}

// Option configures the memory store.
type Option func(*memory)

// WithClock sets the clock used to stamp saved rounds.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{rounds: make(map[string]entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) Save(ctx context.Context, id string, r *game.Round) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[id] = entry{round: r, created: m.now()}
	return nil
}

func (m *memory) View(ctx context.Context, id string, fn func(*game.Round) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.round)
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Round) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.round)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.rounds {
		if e.created.Before(cutoff) {
			delete(m.rounds, id)
			n++
		}
	}
	return n
}
