// Package response renders the JSON envelope shared by all HTTP handlers.
package response

import (
	"net/http"

	domainerrors "shelf/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Response is the success envelope. Failures use domainerrors.Response, which has
// the same shape without Data.
type Response struct {
	Success bool                    `json:"success"`
	Code    int                     `json:"code"`
	Message string                  `json:"message"`
	Data    any                     `json:"data,omitempty"`
	Error   *domainerrors.ErrorInfo `json:"error,omitempty"`
}

// Success writes data with statusCode. An empty message becomes "Success".
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// BindingError reports a request body that could not be decoded.
func BindingError(c echo.Context, errorCode string, message string) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Code:    http.StatusBadRequest,
		Message: message,
		Error:   &domainerrors.ErrorInfo{Code: errorCode},
	})
}
