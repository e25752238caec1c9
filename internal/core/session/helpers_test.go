package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/ports"
)

type stubStorage struct {
	data    map[string]string
	getErr  error
	setErr  error
	deletes int
}

func newStubStorage() *stubStorage {
	return &stubStorage{data: make(map[string]string)}
}

func (s *stubStorage) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	tok, ok := s.data[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	return tok, nil
}

func (s *stubStorage) Set(_ context.Context, key, token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = token
	return nil
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	s.deletes++
	delete(s.data, key)
	return nil
}

var errStorageDown = errors.New("storage down")

// fixedNow is the clock used by every test in this package.
var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func tokenFor(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	return signToken(t, jwt.MapClaims{
		"username": "joel",
		"sub":      7,
		"userId":   7,
		"rol":      role,
		"iat":      fixedNow.Add(-time.Minute).Unix(),
		"exp":      exp.Unix(),
	})
}

func zeroLogger() zerolog.Logger { return zerolog.Nop() }
