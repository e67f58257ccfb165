// Package prefs stores small per-visitor preferences such as the selected
// theme.
package prefs

import (
	"context"
	"sync"
)

// Store persists string preferences keyed by owner and key.
type Store interface {
	// Get returns the stored value. ok is false when nothing is stored.
	Get(ctx context.Context, owner, key string) (value string, ok bool, err error)
	Put(ctx context.Context, owner, key, value string) error
	Close() error
}

type memKey struct {
	owner, key string
}

// Memory is an in-process Store. It is safe for concurrent use so one
// instance can back every session of a server.
type Memory struct {
	mu     sync.RWMutex
	values map[memKey]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[memKey]string)}
}

func (m *Memory) Get(ctx context.Context, owner, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[memKey{owner, key}]
	return v, ok, nil
}

func (m *Memory) Put(ctx context.Context, owner, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[memKey{owner, key}] = value
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
