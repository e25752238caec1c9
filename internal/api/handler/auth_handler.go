package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inventario/inventory-console/internal/api/middleware"
	"github.com/inventario/inventory-console/internal/core/domain"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	api         ports.APIFactory
}

func NewAuthHandler(authService ports.AuthService, api ports.APIFactory) *AuthHandler {
	return &AuthHandler{authService: authService, api: api}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	From     string `json:"from" form:"from" query:"from"`
}

type loginForm struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
	From   string   `json:"from,omitempty"`
}

type authResponse struct {
	User     *domain.UserIdentity `json:"user,omitempty"`
	Redirect string               `json:"redirect"`
}

// LoginForm describes the login view. Visitors that are already logged in go
// straight to the dashboard.
//
// @Summary      Login view
// @Tags         auth
// @Produce      json
// @Param        from  query     string  false  "Path that triggered the login redirect"
// @Success      200   {object}  loginForm
// @Success      302
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}
	if store.IsAuthenticated(c.Request().Context()) {
		return c.Redirect(http.StatusFound, navigation.DashboardPath)
	}
	return c.JSON(http.StatusOK, loginForm{
		Title:  "Bienvenido",
		Fields: []string{"username", "password"},
		From:   safeRedirect(c.QueryParam("from")),
	})
}

// Login authenticates against the inventory API and starts the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	api, store, err := ctxAPI(c, h.api)
	if err != nil {
		return err
	}
	user, err := h.authService.Login(c.Request().Context(), api, store, req.Username, req.Password)
	if err != nil {
		return err
	}
	// A session id that existed before login must not survive it.
	if _, err := middleware.RotateSession(c); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	redirect := safeRedirect(req.From)
	if redirect == "" {
		redirect = navigation.DashboardPath
	}
	return c.JSON(http.StatusOK, authResponse{User: user, Redirect: redirect})
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	store, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), store); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Redirect: navigation.LoginPath})
}

// safeRedirect keeps only same-origin absolute paths so the login "from"
// parameter cannot bounce users to another host.
func safeRedirect(from string) string {
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return ""
	}
	if from == navigation.LoginPath || strings.HasPrefix(from, navigation.LoginPath+"?") {
		return ""
	}
	return from
}
