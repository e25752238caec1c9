package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/session"
	"github.com/inventario/inventory-console/internal/infrastructure/storage"
)

func TestViewHandler_List_ForwardsSessionToken(t *testing.T) {
	tokens := storage.NewMemoryTokenStorage()
	cookie := sessionFor(t, tokens, domain.RoleOperador)
	api := newStubAPI()
	api.responses["/productos"] = `[{"id":1,"nombre":"Agua"},{"id":2,"nombre":"Jugo"}]`
	h := NewViewHandler(api.factory(), navigation.Default())

	rec, err := serve(t, tokens, h.List("/productos"), jsonRequest(http.MethodGet, "/productos", "", cookie), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Title string           `json:"title"`
		Items []domain.Product `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if resp.Title != "Productos" || len(resp.Items) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	want, _ := tokens.Get(context.Background(), session.Key(testSessionID))
	if len(api.tokens) != 1 || api.tokens[0] != want {
		t.Fatalf("expected the session token to reach the API, got %v", api.tokens)
	}
}

func TestViewHandler_List_UpstreamError(t *testing.T) {
	tokens := storage.NewMemoryTokenStorage()
	cookie := sessionFor(t, tokens, domain.RoleAdmin)
	api := newStubAPI()
	api.failures["/almacenes"] = domain.ErrUpstream
	h := NewViewHandler(api.factory(), navigation.Default())

	_, err := serve(t, tokens, h.List("/almacenes"), jsonRequest(http.MethodGet, "/almacenes", "", cookie), nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestViewHandler_List_UndeclaredPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an undeclared view")
		}
	}()
	NewViewHandler(newStubAPI().factory(), navigation.Default()).List("/inventario")
}

func TestViewHandler_Categories_CountsProducts(t *testing.T) {
	tokens := storage.NewMemoryTokenStorage()
	cookie := sessionFor(t, tokens, domain.RoleAdmin)
	api := newStubAPI()
	api.responses["/categorias"] = `[{"id":1,"nombre":"Bebidas"},{"id":2,"nombre":"Limpieza"},{"id":3,"nombre":"Snacks"}]`
	api.responses["/productos"] = `[
		{"id":10,"nombre":"Agua","categoria":{"id":1,"nombre":"Bebidas"}},
		{"id":11,"nombre":"Jugo","categoria":{"id":1,"nombre":"Bebidas"}},
		{"id":12,"nombre":"Cloro","categoria":{"id":2,"nombre":"Limpieza"}},
		{"id":13,"nombre":"Suelto"}
	]`
	h := NewViewHandler(api.factory(), navigation.Default())

	rec, err := serve(t, tokens, h.Categories, jsonRequest(http.MethodGet, "/categorias", "", cookie), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp categoriesResponse
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(resp.Items))
	}
	if resp.Items[0].ProductCount != 2 || resp.Items[1].ProductCount != 1 || resp.Items[2].ProductCount != 0 {
		t.Fatalf("unexpected counts %+v", resp.Items)
	}
	if resp.TotalProductos != 3 || resp.CategoriasConProductos != 2 || resp.CategoriasSinProductos != 1 {
		t.Fatalf("unexpected totals %+v", resp)
	}
}

func TestViewHandler_ResolveAlert(t *testing.T) {
	tokens := storage.NewMemoryTokenStorage()
	cookie := sessionFor(t, tokens, domain.RoleAdmin)
	api := newStubAPI()
	h := NewViewHandler(api.factory(), navigation.Default())

	setup := func(c echo.Context) {
		c.SetPath("/alertas/:id/resolver")
		c.SetParamNames("id")
		c.SetParamValues("42")
	}
	rec, err := serve(t, tokens, h.ResolveAlert, jsonRequest(http.MethodPost, "/alertas/42/resolver", "", cookie), setup)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(api.calls) != 1 || api.calls[0] != "PATCH /alertas/42/resolver" {
		t.Fatalf("unexpected calls %v", api.calls)
	}
}

func TestViewHandler_ResolveAlert_InvalidID(t *testing.T) {
	tokens := storage.NewMemoryTokenStorage()
	cookie := sessionFor(t, tokens, domain.RoleAdmin)
	api := newStubAPI()
	h := NewViewHandler(api.factory(), navigation.Default())

	for _, id := range []string{"0", "abc"} {
		setup := func(c echo.Context) {
			c.SetPath("/alertas/:id/resolver")
			c.SetParamNames("id")
			c.SetParamValues(id)
		}
		_, err := serve(t, tokens, h.ResolveAlert, jsonRequest(http.MethodPost, "/alertas/"+id+"/resolver", "", cookie), setup)
		if code := httpCode(t, err); code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", id, code)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("API must not be called, got %v", api.calls)
	}
}
