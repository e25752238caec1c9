package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/api/middleware"
	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/core/session"
	"github.com/inventario/inventory-console/internal/infrastructure/storage"
)

const (
	testCookie    = "inv_session"
	testSessionID = "6f1c2b9e-3a44-4b8e-a0f5-2d7c9e81b3aa"
)

// stubAPI answers from canned JSON bodies keyed by path and remembers the
// bearer token each call would have carried.
type stubAPI struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	calls     []string
	tokens    []string
	src       func(context.Context) string
}

func newStubAPI() *stubAPI {
	return &stubAPI{responses: make(map[string]string), failures: make(map[string]error)}
}

func (a *stubAPI) factory() ports.APIFactory {
	return func(src func(context.Context) string) ports.InventoryAPI {
		a.mu.Lock()
		a.src = src
		a.mu.Unlock()
		return a
	}
}

func (a *stubAPI) record(ctx context.Context, call string) {
	a.calls = append(a.calls, call)
	if a.src != nil {
		a.tokens = append(a.tokens, a.src(ctx))
	}
}

func (a *stubAPI) Login(ctx context.Context, username, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record(ctx, "login:"+username)
	return "", nil
}

func (a *stubAPI) List(ctx context.Context, resource string, out any) error {
	return a.Get(ctx, "/"+strings.TrimPrefix(resource, "/"), out)
}

func (a *stubAPI) Get(ctx context.Context, path string, out any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record(ctx, path)
	if err, ok := a.failures[path]; ok {
		return err
	}
	body, ok := a.responses[path]
	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal([]byte(body), out)
}

func (a *stubAPI) Patch(ctx context.Context, path string, _, out any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record(ctx, "PATCH "+path)
	if err, ok := a.failures[path]; ok {
		return err
	}
	if body, ok := a.responses[path]; ok && out != nil {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func signedToken(t *testing.T, username, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"userId":   7,
		"rol":      role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// sessionFor seeds storage with a logged-in session for role and returns the
// matching browser cookie. An empty role leaves the session anonymous.
func sessionFor(t *testing.T, tokens *storage.MemoryTokenStorage, role string) *http.Cookie {
	t.Helper()
	if role != "" {
		if err := tokens.Set(context.Background(), session.Key(testSessionID), signedToken(t, "alice", role)); err != nil {
			t.Fatalf("seed token: %v", err)
		}
	}
	return &http.Cookie{Name: testCookie, Value: testSessionID}
}

// serve runs h behind the Session middleware, the way the router mounts it.
func serve(t *testing.T, tokens *storage.MemoryTokenStorage, h echo.HandlerFunc, req *http.Request, setup func(echo.Context)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	mw := middleware.Session(session.NewManager(tokens, zerolog.Nop()), middleware.SessionConfig{CookieName: testCookie}, zerolog.Nop())
	return rec, mw(h)(c)
}

func jsonRequest(method, target, body string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
