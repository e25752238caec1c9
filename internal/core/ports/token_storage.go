package ports

import (
	"context"
	"errors"
)

// ErrTokenNotFound is returned by TokenStorage.Get when the key holds no token.
var ErrTokenNotFound = errors.New("token not found")

// TokenStorage is the durable storage that keeps a raw bearer token across
// restarts. Each key holds one token.
type TokenStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
