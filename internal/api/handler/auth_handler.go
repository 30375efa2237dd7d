package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/api/metrics"
	"github.com/peanutblog/blog-api/internal/api/middleware"
	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/ports"
)

// AuthHandler exposes end-user registration, login and profile lookup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Email           string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new user account and returns a signed token.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  response
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	tkn, user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.ConfirmPassword, req.Email)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("user", "success").Inc()
	return ok(c, authPayload{ID: user.ID, Username: user.Username, Token: tkn})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  response
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(http.StatusBadRequest, "invalid payload", nil)
	}

	tkn, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("user", "success").Inc()
	return ok(c, authPayload{ID: user.ID, Username: user.Username, Token: tkn})
}

// Me returns the authenticated user's own record.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  map[string]any
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, okUser := middleware.CurrentUser(c)
	if !okUser {
		return domain.NewError(http.StatusUnauthorized, "Authorization header must be provided", nil)
	}
	return ok(c, map[string]any{"user": user})
}
