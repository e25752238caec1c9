// Package session holds the console's notion of "who is logged in".
//
// A Store owns one bearer token, persisted under a single key of a
// ports.TokenStorage, and the identity decoded from it. Malformed or expired
// tokens never surface as errors: they degrade the store to anonymous and
// clear durable storage.
//
//	Uninitialized --Init--> Authenticated | Anonymous
//	Anonymous --Login--> Authenticated
//	Authenticated --Logout / expiry--> Anonymous
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/ports"
)

// DefaultKey is the storage key used by single-user consoles.
const DefaultKey = "token"

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger attaches a logger for session transitions.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

type Store struct {
	storage ports.TokenStorage
	key     string
	now     func() time.Time
	log     zerolog.Logger

	mu      sync.RWMutex
	loading bool
	token   string
	user    *domain.UserIdentity
}

// NewStore returns an uninitialised store. IsLoading reports true until Init
// or Login runs.
func NewStore(storage ports.TokenStorage, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		storage: storage,
		key:     key,
		now:     time.Now,
		log:     zerolog.Nop(),
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the token from durable storage and evaluates it once.
// Loading is over after Init even when storage fails.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.storage.Get(ctx, s.key)
	if err != nil && !errors.Is(err, ports.ErrTokenNotFound) {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return fmt.Errorf("session init: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.loading = false
	return s.evaluateLocked(ctx)
}

// Login persists token and makes it the active one. The token is decoded
// right away; a malformed or expired token leaves the store anonymous.
func (s *Store) Login(ctx context.Context, token string) error {
	if err := s.storage.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("session login: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.loading = false
	return s.evaluateLocked(ctx)
}

// Logout clears durable storage and the active token. Calling it on an
// anonymous store is a no-op apart from the storage delete.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// CurrentUser returns the decoded identity, or nil when nobody is logged in.
// An identity whose expiry has passed logs the session out.
func (s *Store) CurrentUser(ctx context.Context) *domain.UserIdentity {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()

	if user == nil || !user.Expired(s.now()) {
		return user
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another reader may have logged out or a login may have replaced the
	// token since the read lock was released.
	if s.user != user {
		return s.user
	}
	s.log.Info().Str("username", user.Username).Msg("session expired")
	if err := s.clearLocked(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear expired session token")
	}
	return nil
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.CurrentUser(ctx) != nil
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the active bearer token while the session is valid, and ""
// otherwise.
func (s *Store) Token(ctx context.Context) string {
	if s.CurrentUser(ctx) == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// evaluateLocked re-derives the identity from s.token. Callers hold s.mu.
func (s *Store) evaluateLocked(ctx context.Context) error {
	if s.token == "" {
		s.user = nil
		return nil
	}

	user, err := Decode(s.token)
	if err == nil && user.Expired(s.now()) {
		err = domain.ErrTokenExpired
	}
	if err != nil {
		s.log.Info().Err(err).Msg("discarding session token")
		return s.clearLocked(ctx)
	}

	s.user = user
	return nil
}

func (s *Store) clearLocked(ctx context.Context) error {
	s.token = ""
	s.user = nil
	s.loading = false
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session logout: %w", err)
	}
	return nil
}
