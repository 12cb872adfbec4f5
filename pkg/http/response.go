package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Page is a list payload with its row count.
type Page struct {
	Rows  interface{} `json:"rows"`
	Total int64       `json:"total"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Status: status, Message: http.StatusText(status), Data: data})
}

func SuccessResponse(c echo.Context, data interface{}) error {
	return respond(c, http.StatusOK, data)
}

func ListResponse(c echo.Context, rows interface{}, total int64) error {
	return respond(c, http.StatusOK, Page{Rows: rows, Total: total})
}

// BadRequestResponse answers 400 with validation details.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return respond(c, http.StatusBadRequest, details)
}

// AppErrorResponse writes err with its own status. Errors that are not an
// AppError become a bare 500 so internals never reach the client.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		return respond(c, appErr.Status, []*AppError{{Code: appErr.Code, Message: appErr.Message}})
	}
	return respond(c, appErr.Status, []*AppError{appErr})
}
