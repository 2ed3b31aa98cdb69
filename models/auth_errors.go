package models

import (
	"errors"
	"fmt"
)

// Fallback messages shown when the auth API gives no usable message
const (
	LoginFailedMessage        = "Login failed"
	RegistrationFailedMessage = "Registration failed. Please try again."
)

// EndpointError is a rejection from the auth API: any non-2xx response, or
// a 2xx response that lacks the field the call needs.
// Message is the API's own text and may be empty.
type EndpointError struct {
	Status  int
	Message string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth api responded with status %d", e.Status)
	}
	return fmt.Sprintf("auth api responded with status %d: %s", e.Status, e.Message)
}

// TransportError means the request never produced a usable response:
// it could not be built or sent, or the reply could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorMessage picks the text to show for a failed auth call: the API's
// message when it sent one, fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var endpointErr *EndpointError
	if errors.As(err, &endpointErr) && endpointErr.Message != "" {
		return endpointErr.Message
	}
	return fallback
}
