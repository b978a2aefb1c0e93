package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrEmptyWords      = fmt.Errorf("no words have been found")
	ErrUnknownLanguage = fmt.Errorf("dictionary is not named after a known language")

	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrNotFound        = fmt.Errorf("not found")
	ErrRoomNotFound    = fmt.Errorf("%w: no room exists for this id", ErrNotFound)
	ErrUnauthorized    = fmt.Errorf("not a participant of this room")
	ErrUnauthenticated = fmt.Errorf("not authorized to access this route")
	ErrConflict        = fmt.Errorf("conflict")
	ErrConnectionGone  = fmt.Errorf("%w: connection is not registered", ErrNotFound)
	ErrNotIdentified   = fmt.Errorf("%w: connection has not announced its identity", ErrUnauthorized)
)

// Is and As mirror the standard library helpers.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

// ToHTTPStatus maps the chat error taxonomy onto HTTP status codes.
func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
