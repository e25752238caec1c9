package storage

import (
	"context"
	"sync"

	"github.com/inventario/inventory-console/internal/core/ports"
)

// MemoryTokenStorage keeps tokens in process memory. Tokens do not survive a
// restart; it is meant for tests and single-process development.
type MemoryTokenStorage struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{tokens: make(map[string]string)}
}

func (m *MemoryTokenStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tok, ok := m.tokens[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	return tok, nil
}

func (m *MemoryTokenStorage) Set(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[key] = token
	return nil
}

func (m *MemoryTokenStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}
