package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventario/inventory-console/internal/api/middleware"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/core/session"
)

// ctxSession fetches the store bound by the Session middleware. A missing
// store means the route was registered without it, which is a wiring bug.
func ctxSession(c echo.Context) (*session.Store, error) {
	store := middleware.SessionFrom(c)
	if store == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return store, nil
}

// ctxAPI returns an inventory API client that carries the session's token.
func ctxAPI(c echo.Context, factory ports.APIFactory) (ports.InventoryAPI, *session.Store, error) {
	store, err := ctxSession(c)
	if err != nil {
		return nil, nil, err
	}
	return factory(store.Token), store, nil
}
