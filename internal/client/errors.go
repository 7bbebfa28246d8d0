package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyTitle is returned by Create when the title is blank.
var ErrEmptyTitle = errors.New("goal title must not be empty")

// ErrEmptyID is returned when a goal id is required but blank.
var ErrEmptyID = errors.New("goal id must not be empty")

// TransportError is the single failure kind for backend calls. It covers
// network failures (StatusCode 0, Err set), non-2xx responses and
// undecodable response bodies.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("%s: API error: %d - %s", e.Op, e.StatusCode, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s %s failed", e.Op, e.Method, e.URL)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the backend answered 404.
func (e *TransportError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
