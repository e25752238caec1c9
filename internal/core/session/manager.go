package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/ports"
)

const keyPrefix = "token:"

// Manager hands out one Store per browser session, all sharing the same
// durable storage.
type Manager struct {
	storage ports.TokenStorage
	log     zerolog.Logger
	opts    []Option
}

// NewManager returns a Manager. opts are applied to every Store it opens.
func NewManager(storage ports.TokenStorage, log zerolog.Logger, opts ...Option) *Manager {
	return &Manager{storage: storage, log: log, opts: opts}
}

// Key returns the storage key that holds the token of session id.
func Key(id string) string {
	return keyPrefix + id
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

func (m *Manager) newStore(id string) *Store {
	opts := make([]Option, 0, len(m.opts)+1)
	opts = append(opts, WithLogger(m.log.With().Str("session_id", id).Logger()))
	opts = append(opts, m.opts...)
	return NewStore(m.storage, Key(id), opts...)
}

// Open returns an initialised Store for the browser session id. The store is
// returned even when Init fails, in which case it is anonymous.
func (m *Manager) Open(ctx context.Context, id string) (*Store, error) {
	s := m.newStore(id)
	return s, s.Init(ctx)
}

// Rotate moves the token held by store under a freshly generated session id
// and deletes the old key, leaving store anonymous. It returns the new id and
// its Store.
func (m *Manager) Rotate(ctx context.Context, store *Store) (string, *Store, error) {
	id := NewID()
	next := m.newStore(id)

	if token := store.Token(ctx); token != "" {
		if err := next.Login(ctx, token); err != nil {
			return "", nil, fmt.Errorf("rotate session: %w", err)
		}
	} else if err := next.Init(ctx); err != nil {
		return "", nil, fmt.Errorf("rotate session: %w", err)
	}

	if err := store.Logout(ctx); err != nil {
		return "", nil, fmt.Errorf("rotate session: %w", err)
	}
	return id, next, nil
}
