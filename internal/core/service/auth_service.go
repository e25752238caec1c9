package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/pkg/metrics"
)

// AuthService drives the login and logout flows of a browser session.
type AuthService struct {
	log zerolog.Logger
}

func NewAuthService(log zerolog.Logger) *AuthService {
	return &AuthService{log: log}
}

// Login exchanges credentials for a token through api and hands the token to
// sess. A token the session cannot use (malformed, already expired) counts
// as a failed login.
func (s *AuthService) Login(ctx context.Context, api ports.InventoryAPI, sess ports.Session, username, password string) (*domain.UserIdentity, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := sess.Login(ctx, token); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	user := sess.CurrentUser(ctx)
	if user == nil {
		s.log.Warn().Str("username", username).Msg("inventory api issued an unusable token")
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sess ports.Session) error {
	user := sess.CurrentUser(ctx)
	if err := sess.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.LogoutsTotal.Inc()
	if user != nil {
		s.log.Info().Str("username", user.Username).Msg("user logged out")
	}
	return nil
}
