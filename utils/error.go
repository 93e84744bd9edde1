package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// AuthError indicates bad credentials or an invalid/expired token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// NetworkError indicates a transport-level failure, including timeouts.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError carries a 4xx/5xx response and the server's message payload.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server rejected the request (status %d)", e.Status)
}

// ValidationError indicates a client-side precondition failure. No request
// is issued when one of these is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ClassifyHTTPError maps a non-2xx response to the error taxonomy.
// 401/403 become AuthError so callers can clear a dead session.
func ClassifyHTTPError(status int, message string) error {
	if status == 401 || status == 403 {
		return &AuthError{Message: message}
	}
	return &ServerError{Status: status, Message: message}
}

// ClassifyTransportError wraps dial/timeout/context failures as NetworkError.
func ClassifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &NetworkError{Err: uerr.Err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &NetworkError{Err: err}
	}
	return &NetworkError{Err: err}
}

// UserMessage renders the short human-readable message the presentation
// layer shows for a failure.
func UserMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Error()
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "network error, please try again"
	}
	return err.Error()
}
