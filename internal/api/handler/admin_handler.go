package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/api/metrics"
	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
)

// AdminHandler exposes admin login and the back-office admin management
// endpoints.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
	Role     string `json:"role"`
}

// Login authenticates an admin and returns a signed token.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /admin/users/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	tkn, admin, err := h.adminService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("admin", "failure").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("admin", "success").Inc()
	return ok(c, authPayload{ID: admin.ID, Username: admin.Username, Token: tkn})
}

// Index lists all admins.
//
// @Summary      List admins
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /admin/users [get]
func (h *AdminHandler) Index(c echo.Context) error {
	admins, err := h.adminService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"admins": admins})
}

// Create adds a new admin.
//
// @Summary      Create admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminRequest  true  "Admin details"
// @Success      200   {object}  response
// @Failure      422   {object}  map[string]any
// @Router       /admin/users [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req adminRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	admin, err := h.adminService.Create(c.Request().Context(), req.Username, req.Password, req.IsAdmin, req.Role)
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"admin": admin, "message": "created successfully"})
}

// Update replaces an admin's credentials, super flag and role.
//
// @Summary      Update admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Admin id"
// @Param        body  body      adminRequest  true  "Admin details"
// @Success      200   {object}  response
// @Failure      404   {object}  map[string]any
// @Router       /admin/users/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	var req adminRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	admin, err := h.adminService.Update(c.Request().Context(), c.Param("id"), req.Username, req.Password, req.IsAdmin, req.Role)
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"admin": admin, "message": "updated successfully"})
}

// AssignRole attaches a role to an admin.
//
// @Summary      Assign role to admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "Admin id"
// @Param        roleId  path  string  true  "Role id"
// @Success      200  {object}  response
// @Failure      404  {object}  map[string]any
// @Router       /admin/users/{id}/role/{roleId} [post]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	admin, err := h.adminService.AssignRole(c.Request().Context(), c.Param("id"), c.Param("roleId"))
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"admin": admin})
}
