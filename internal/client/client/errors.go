package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionRejected marks a rejection by the server's token check, as
	// opposed to a 401 from a wrong password.
	ErrSessionRejected = errors.New("session rejected")
)

// Bodies the token check answers with.
const (
	msgTokenRequired = "Token is required"
	msgTokenInvalid  = "Invalid or expired token"
)

// APIError is a non-2xx response. Message is the server's "error" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() []error {
	switch e.Status {
	case http.StatusForbidden:
		if e.Message == msgTokenRequired {
			return []error{ErrUnauthorized, ErrSessionRejected}
		}
		return []error{ErrUnauthorized}
	case http.StatusUnauthorized:
		if e.Message == msgTokenInvalid {
			return []error{ErrUnauthorized, ErrSessionRejected}
		}
		return []error{ErrUnauthorized}
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return []error{ErrUnavailable}
	}
	return nil
}
