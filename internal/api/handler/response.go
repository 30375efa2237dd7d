package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// response is the success envelope every endpoint returns. The failure
// counterpart lives in the API error handler.
type response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, response{Success: true, Data: data})
}

// authPayload is the body of a successful login or registration.
type authPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
