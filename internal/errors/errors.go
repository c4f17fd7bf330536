// Package errors provides custom error types for the live results client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrConnectionClosed = errors.New("connection closed")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// FrameError represents an inbound frame that is not valid JSON
type FrameError struct {
	Message string
	Size    int
}

func (e *FrameError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("malformed frame (%d bytes)", e.Size)
	}
	return fmt.Sprintf("malformed frame (%d bytes): %s", e.Size, e.Message)
}

// Is allows comparison with sentinel errors
func (e *FrameError) Is(target error) bool {
	if target == ErrMalformedFrame {
		return true
	}
	_, ok := target.(*FrameError)
	return ok
}

// NewFrameError creates a new FrameError
func NewFrameError(message string, size int) *FrameError {
	return &FrameError{Message: message, Size: size}
}

// ConnectionError represents a dial or read failure on the results socket
type ConnectionError struct {
	Endpoint string
	Message  string
	Err      error
}

func (e *ConnectionError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "connection closed"
	}
	if e.Endpoint == "" {
		return fmt.Sprintf("connection error: %s", msg)
	}
	return fmt.Sprintf("connection error at %s: %s", e.Endpoint, msg)
}

// Unwrap returns the underlying cause
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *ConnectionError) Is(target error) bool {
	if target == ErrConnectionClosed {
		return true
	}
	_, ok := target.(*ConnectionError)
	return ok
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(endpoint, message string, err error) *ConnectionError {
	return &ConnectionError{
		Endpoint: endpoint,
		Message:  message,
		Err:      err,
	}
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %q: %s", e.Key, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message}
}

// IsFrameError reports whether err is a malformed frame error
func IsFrameError(err error) bool {
	return errors.Is(err, ErrMalformedFrame)
}

// IsConnectionError reports whether err is a connection error
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// GetEndpoint extracts the endpoint from a ConnectionError, or "" otherwise
func GetEndpoint(err error) string {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Endpoint
	}
	return ""
}
