package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/core/service"
)

// ViewHandler serves the list views. Each view is a thin pass-through to the
// inventory API list endpoint of the same name.
type ViewHandler struct {
	api   ports.APIFactory
	table *navigation.Table
}

func NewViewHandler(api ports.APIFactory, table *navigation.Table) *ViewHandler {
	return &ViewHandler{api: api, table: table}
}

type listResponse struct {
	Title string          `json:"title"`
	Items json.RawMessage `json:"items"`
}

// List returns the handler for the view at path, which must be declared in
// the navigation table.
//
// @Summary      List view
// @Tags         views
// @Produce      json
// @Param        resource  path      string  true  "productos, movimientos, almacenes, ubicaciones, alertas, usuarios, roles or proveedores"
// @Success      200       {object}  listResponse
// @Success      302
// @Failure      502       {object}  map[string]string
// @Router       /{resource} [get]
func (h *ViewHandler) List(path string) echo.HandlerFunc {
	entry, ok := h.table.Lookup(path)
	if !ok {
		panic("handler: no navigation entry for " + path)
	}
	resource := strings.TrimPrefix(path, "/")

	return func(c echo.Context) error {
		api, _, err := ctxAPI(c, h.api)
		if err != nil {
			return err
		}
		var items json.RawMessage
		if err := api.List(c.Request().Context(), resource, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			items = json.RawMessage("[]")
		}
		return c.JSON(http.StatusOK, listResponse{Title: entry.Title, Items: items})
	}
}

type categoryView struct {
	domain.Category
	ProductCount int `json:"productCount"`
}

type categoriesResponse struct {
	Title                  string         `json:"title"`
	Items                  []categoryView `json:"items"`
	TotalProductos         int            `json:"totalProductos"`
	CategoriasConProductos int            `json:"categoriasConProductos"`
	CategoriasSinProductos int            `json:"categoriasSinProductos"`
}

// Categories lists categories together with how many products each holds.
//
// @Summary      Categories view
// @Tags         views
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Success      302
// @Failure      502  {object}  map[string]string
// @Router       /categorias [get]
func (h *ViewHandler) Categories(c echo.Context) error {
	api, _, err := ctxAPI(c, h.api)
	if err != nil {
		return err
	}

	var (
		categories []domain.Category
		products   []domain.Product
	)
	g, gctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error { return api.List(gctx, "categorias", &categories) })
	g.Go(func() error { return api.List(gctx, "productos", &products) })
	if err := g.Wait(); err != nil {
		return err
	}

	counts := service.CategoryProductCounts(products)
	resp := categoriesResponse{Title: "Categorías", Items: make([]categoryView, 0, len(categories))}
	for _, cat := range categories {
		n := counts[cat.ID]
		resp.Items = append(resp.Items, categoryView{Category: cat, ProductCount: n})
		resp.TotalProductos += n
		if n > 0 {
			resp.CategoriasConProductos++
		}
	}
	resp.CategoriasSinProductos = len(categories) - resp.CategoriasConProductos
	return c.JSON(http.StatusOK, resp)
}

type resolveAlertRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

// ResolveAlert marks a low-stock alert as resolved.
//
// @Summary      Resolve alert
// @Tags         views
// @Produce      json
// @Param        id   path      int  true  "Alert id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /alertas/{id}/resolver [post]
func (h *ViewHandler) ResolveAlert(c echo.Context) error {
	var req resolveAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	api, _, err := ctxAPI(c, h.api)
	if err != nil {
		return err
	}
	var body json.RawMessage
	if err := api.Patch(c.Request().Context(), fmt.Sprintf("/alertas/%d/resolver", req.ID), nil, &body); err != nil {
		return err
	}
	if len(body) == 0 {
		body = json.RawMessage(fmt.Sprintf(`{"id":%d,"resuelta":true}`, req.ID))
	}
	return c.JSONBlob(http.StatusOK, body)
}
