package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIResponse is the success envelope every endpoint returns.
type APIResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
}

// APIErrorResponse is the error envelope produced by the error handler.
type APIErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, APIResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Message:   message,
		Data:      data,
	})
}

// ErrorHandler translates every error reaching the edge into the error
// envelope. Unrecognized errors never leak internals to the caller.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Unexpected server error"

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	resp := APIErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request().URL.Path,
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, resp)
}
