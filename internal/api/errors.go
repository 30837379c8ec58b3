package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ApiError is the only failure shape the API serializes. The body is
// {"error": <message>}; the status code travels in the response header.
type ApiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NewBadRequestError(message string) *ApiError {
	if message == "" {
		message = lower(http.StatusText(http.StatusBadRequest))
	}
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

func NewNotFoundError(message string) *ApiError {
	if message == "" {
		message = lower(http.StatusText(http.StatusNotFound))
	}
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func NewConflictError(message string) *ApiError {
	if message == "" {
		message = lower(http.StatusText(http.StatusConflict))
	}
	return &ApiError{
		StatusCode: http.StatusConflict,
		Message:    message,
	}
}

// NewInternalServerError surfaces the underlying failure message verbatim;
// storage errors are never retried or degraded silently.
func NewInternalServerError(err error) *ApiError {
	message := lower(http.StatusText(http.StatusInternalServerError))
	if err != nil {
		message = err.Error()
	}
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Err:        err,
	}
}

func NewUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = lower(http.StatusText(http.StatusUnauthorized))
	}
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func NewForbiddenError(message string) *ApiError {
	if message == "" {
		message = lower(http.StatusText(http.StatusForbidden))
	}
	return &ApiError{
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

func NewMethodNotAllowedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    lower(http.StatusText(http.StatusMethodNotAllowed)),
	}
}
