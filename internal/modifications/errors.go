package modifications

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("modification record not found")
	ErrDuplicate         = errors.New("modification record already exists")
	ErrInvalidTransition = errors.New("invalid modification status transition")
)

// MapHTTPStatus converts modification errors to HTTP status codes.
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
