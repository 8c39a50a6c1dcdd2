package tasks

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("task not found")
	ErrDuplicate         = errors.New("task already exists")
	ErrInvalidTransition = errors.New("invalid task status transition")
)

// MapHTTPStatus converts task errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
