package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidTransition  = errors.New("invalid session transition")
	ErrRequestInFlight    = errors.New("request already in flight")
	ErrNoProductSelected  = errors.New("no product selected")
	ErrInvalidProductForm = errors.New("invalid product form")
	ErrProductNotFound    = errors.New("product not found")
	ErrUpstreamFailure    = errors.New("upstream request failed")
	ErrForbidden          = errors.New("action not allowed for role")
)

// APIError is a non-2xx response from the storefront API.
// Detail holds the server-provided message when the body carried one.
type APIError struct {
	Status int
	Detail string
	Method string
	Path   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is match 401 responses against ErrUnauthorized and any
// response against ErrUpstreamFailure.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrUpstreamFailure:
		return true
	}
	return false
}

// UserAlert is a failure the initiating view must show to the operator.
// Message is already localised; Err keeps the cause for logs.
type UserAlert struct {
	Message string
	Err     error
}

func (a *UserAlert) Error() string {
	if a.Err == nil {
		return a.Message
	}
	return a.Message + ": " + a.Err.Error()
}

func (a *UserAlert) Unwrap() error { return a.Err }

// AlertFrom builds a UserAlert that prefers the server detail over fallback.
func AlertFrom(err error, fallback string) *UserAlert {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return &UserAlert{Message: apiErr.Detail, Err: err}
	}
	return &UserAlert{Message: fallback, Err: err}
}
