package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inventario/inventory-console/internal/core/ports"
)

// FileTokenStorage keeps each token in its own file under a directory.
// File names are the base64url form of the key so any key is a safe name.
type FileTokenStorage struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// FileOption configures a FileTokenStorage.
type FileOption func(*FileTokenStorage)

// WithMaxAge makes tokens written more than d ago read as missing. Stale
// files are removed on read and by Prune. Zero keeps tokens until deleted.
func WithMaxAge(d time.Duration) FileOption {
	return func(f *FileTokenStorage) { f.maxAge = d }
}

// NewFileTokenStorage creates dir if needed.
func NewFileTokenStorage(dir string, opts ...FileOption) (*FileTokenStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("token dir: %w", err)
	}
	f := &FileTokenStorage{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *FileTokenStorage) stale(info fs.FileInfo) bool {
	return f.maxAge > 0 && f.now().Sub(info.ModTime()) > f.maxAge
}

func (f *FileTokenStorage) path(key string) string {
	return filepath.Join(f.dir, base64.RawURLEncoding.EncodeToString([]byte(key)))
}

func (f *FileTokenStorage) Get(_ context.Context, key string) (string, error) {
	path := f.path(key)
	if info, err := os.Stat(path); err == nil && f.stale(info) {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("drop stale token: %w", err)
		}
		return "", ports.ErrTokenNotFound
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ports.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Set writes through a temp file and rename so a crash never leaves a
// truncated token behind.
func (f *FileTokenStorage) Set(_ context.Context, key, token string) error {
	tmp, err := os.CreateTemp(f.dir, ".token-*")
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (f *FileTokenStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Prune removes token files older than the configured max age and returns
// how many were removed.
func (f *FileTokenStorage) Prune(ctx context.Context) (int, error) {
	if f.maxAge <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, fmt.Errorf("prune tokens: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || !f.stale(info) {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("prune tokens: %w", err)
		}
		removed++
	}
	return removed, nil
}
