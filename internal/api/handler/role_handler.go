package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
)

// RoleHandler exposes role management.
type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type roleRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Index lists all roles.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Router       /admin/roles [get]
func (h *RoleHandler) Index(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"roles": roles})
}

// Create adds a role.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Role details"
// @Success      200   {object}  response
// @Failure      422   {object}  map[string]any
// @Router       /admin/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	role, err := h.roleService.Create(c.Request().Context(), req.Name, req.DisplayName)
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"role": role, "message": "created successfully"})
}

// Update renames a role.
//
// @Summary      Update role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Role id"
// @Param        body  body      roleRequest  true  "Role details"
// @Success      200   {object}  response
// @Failure      404   {object}  map[string]any
// @Router       /admin/roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	role, err := h.roleService.Update(c.Request().Context(), c.Param("id"), req.Name, req.DisplayName)
	if err != nil {
		return err
	}
	return ok(c, map[string]any{"role": role, "message": "updated successfully"})
}
