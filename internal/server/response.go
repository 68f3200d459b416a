package server

import "github.com/labstack/echo/v4"

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func successResponse(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c echo.Context, code int, message string, errors interface{}) error {
	return c.JSON(code, APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}
