package middleware

import (
	"net/http"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: every unhandled error becomes
// a JSON body with a message field.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, map[string]string{"message": message}); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
