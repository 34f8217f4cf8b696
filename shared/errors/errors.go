package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds returned by the engagement core. Callers wrap them with
// fmt.Errorf("%w") and test with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParent = errors.New("invalid parent comment")
	ErrForbidden     = errors.New("forbidden")
	ErrStoreFailure  = errors.New("store failure")
	ErrAlreadyExists = errors.New("already exists")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFound returns ErrNotFound prefixed with the missing record name, e.g. "thread not found".
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// StoreFailure marks err as a durable store failure. NotFound errors pass through untouched.
func StoreFailure(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusCode maps an error to the http status the transport should answer with.
func StatusCode(err error) int {
	var withCode *ErrorWithStatusCode
	switch {
	case errors.As(err, &withCode):
		return withCode.StatusCode
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidParent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
