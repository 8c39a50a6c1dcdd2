package systems

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("ai system not found")
	ErrDuplicate       = errors.New("ai system already exists")
	ErrVersionConflict = errors.New("ai system version conflict")
)

// MapHTTPStatus converts system errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
