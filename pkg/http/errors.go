package http

import (
	"fmt"
	"net/http"
)

// AppError is an error with the code and status the API reports for it.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// BadRequestError reports err to the client under code.
func BadRequestError(code string, err error) *AppError {
	return &AppError{Code: code, Message: err.Error(), Status: http.StatusBadRequest, Err: err}
}

// InternalError hides err behind a generic message.
func InternalError(err error) *AppError {
	return &AppError{Code: "ERR_INTERNAL", Message: "internal error", Status: http.StatusInternalServerError, Err: err}
}
