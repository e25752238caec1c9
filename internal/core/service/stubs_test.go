package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/inventario/inventory-console/internal/core/domain"
)

// stubAPI answers GET-style calls from canned JSON bodies keyed by path.
type stubAPI struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	calls     []string

	loginToken string
	loginErr   error
}

func newStubAPI() *stubAPI {
	return &stubAPI{responses: make(map[string]string), failures: make(map[string]error)}
}

func (a *stubAPI) Login(_ context.Context, username, password string) (string, error) {
	a.mu.Lock()
	a.calls = append(a.calls, "login:"+username)
	a.mu.Unlock()
	return a.loginToken, a.loginErr
}

func (a *stubAPI) List(ctx context.Context, resource string, out any) error {
	return a.Get(ctx, "/"+strings.TrimPrefix(resource, "/"), out)
}

func (a *stubAPI) Get(_ context.Context, path string, out any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, path)
	if err, ok := a.failures[path]; ok {
		return err
	}
	body, ok := a.responses[path]
	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal([]byte(body), out)
}

func (a *stubAPI) Patch(_ context.Context, path string, _, _ any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "PATCH "+path)
	return a.failures[path]
}

// stubSession decodes nothing; it trusts the user it was primed with.
type stubSession struct {
	token     string
	user      *domain.UserIdentity
	onLogin   *domain.UserIdentity
	loginErr  error
	logoutErr error
	logouts   int
}

func (s *stubSession) Login(_ context.Context, token string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.token = token
	s.user = s.onLogin
	return nil
}

func (s *stubSession) Logout(context.Context) error {
	s.logouts++
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.token, s.user = "", nil
	return nil
}

func (s *stubSession) CurrentUser(context.Context) *domain.UserIdentity { return s.user }

func (s *stubSession) Token(context.Context) string { return s.token }

var errNetwork = errors.New("connection refused")
