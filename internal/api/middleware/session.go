package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/core/session"
)

const (
	sessionCtxKey = "session"
	bindingCtxKey = "session.binding"
)

// SessionConfig configures the browser session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

func (cfg SessionConfig) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

type binding struct {
	manager *session.Manager
	cfg     SessionConfig
}

// Session binds every request to the session.Store of its browser. The
// browser is identified by a random cookie; an unknown or tampered cookie
// starts a new anonymous session.
func Session(m *session.Manager, cfg SessionConfig, log zerolog.Logger) echo.MiddlewareFunc {
	b := &binding{manager: m, cfg: cfg}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if _, perr := uuid.Parse(ck.Value); perr == nil {
					id = ck.Value
				}
			}
			if id == "" {
				id = session.NewID()
				c.SetCookie(cfg.cookie(id))
			}

			store, err := m.Open(c.Request().Context(), id)
			if err != nil {
				// The store is still usable: it is anonymous and done loading.
				log.Warn().Err(err).Str("session_id", id).Msg("session storage unavailable")
			}
			c.Set(sessionCtxKey, store)
			c.Set(bindingCtxKey, b)
			return next(c)
		}
	}
}

// SessionFrom returns the store bound by Session, or nil when the middleware
// did not run.
func SessionFrom(c echo.Context) *session.Store {
	store, _ := c.Get(sessionCtxKey).(*session.Store)
	return store
}

var errNoSession = errors.New("session middleware not installed")

// RotateSession moves the request's session to a freshly issued id, deletes
// the old one and sends the new cookie. Call it whenever the session gains
// privileges so an id known before login is worthless after it.
func RotateSession(c echo.Context) (*session.Store, error) {
	b, _ := c.Get(bindingCtxKey).(*binding)
	store := SessionFrom(c)
	if b == nil || store == nil {
		return nil, errNoSession
	}

	id, next, err := b.manager.Rotate(c.Request().Context(), store)
	if err != nil {
		return nil, err
	}
	c.SetCookie(b.cfg.cookie(id))
	c.Set(sessionCtxKey, next)
	return next, nil
}
