package client

import "errors"

// Fallback messages for the three failure classes every call normalizes into.
const (
	msgGeneric    = "something went wrong"
	msgNoResponse = "no response received from server"
	msgSetup      = "error setting up the request"
)

// ErrSessionExpired is returned when an authenticated call comes back 401/403.
// The client clears its session before returning it; the caller should send
// the user back through sign-in.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// APIError is the single error value every failed call surfaces. Message is
// always human-readable; StatusCode is zero when no response was received.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string { return e.Message }

func serverError(status int, msg string) *APIError {
	if msg == "" {
		msg = msgGeneric
	}
	return &APIError{Message: msg, StatusCode: status}
}
