package ports

import (
	"context"

	"github.com/inventario/inventory-console/internal/core/domain"
)

// Session is the view of a session store that services need.
type Session interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *domain.UserIdentity
	Token(ctx context.Context) string
}

type AuthService interface {
	Login(ctx context.Context, api InventoryAPI, sess Session, username, password string) (*domain.UserIdentity, error)
	Logout(ctx context.Context, sess Session) error
}
