package realtimews

import (
	"errors"
	"fmt"
)

// Common error variables
var (
	// ErrNotOpen is returned by Send when Open has not completed yet (or the
	// socket was discarded by Close). It is the only error Send ever returns.
	ErrNotOpen = errors.New("realtimews: the socket is not open, call Open first")

	// ErrInvalidConfig is returned when construction or authentication setup is invalid.
	ErrInvalidConfig = errors.New("realtimews: invalid configuration")

	// ErrConnectionFailed is returned when the WebSocket handshake cannot be completed.
	ErrConnectionFailed = errors.New("realtimews: connection failed")

	// ErrSendTimeout is the cause reported when a frame write exceeds the write timeout.
	ErrSendTimeout = errors.New("realtimews: send timeout")

	// ErrInvalidEventData is matched by errors describing frames that could not be parsed.
	ErrInvalidEventData = errors.New("realtimews: invalid event data")
)

// ConfigError represents a configuration error raised by New or Open.
// Configuration errors are fatal for the call that returned them and are never retried.
type ConfigError struct {
	Field   string // The configuration field that is invalid
	Value   string // The invalid value (if safe to log)
	Message string // Detailed error message
	Cause   error  // Underlying error, e.g. a failed token fetch
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("realtimews: invalid config field %q: %s", e.Field, e.Message)
	if e.Value != "" {
		msg = fmt.Sprintf("realtimews: invalid config field %q (value: %q): %s", e.Field, e.Value, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is implements error matching for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ConnectionError represents a WebSocket connection error.
// It wraps underlying network errors with additional context.
type ConnectionError struct {
	URL       string // The WebSocket URL that failed to connect (credentials redacted)
	Cause     error  // The underlying error
	Operation string // The operation that failed (e.g., "dial", "token")
}

func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("realtimews: %s failed for %q: %v", e.Operation, e.URL, e.Cause)
	}
	return fmt.Sprintf("realtimews: %s failed for %q", e.Operation, e.URL)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for ConnectionError.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnectionFailed
}

// SendError describes a failed outbound frame. It is never returned from Send;
// it arrives as the Cause of a RealtimeError delivered to error listeners.
type SendError struct {
	EventType string // The type of event being sent
	EventID   string // The event ID (if available)
	Cause     error  // The underlying error
}

func (e *SendError) Error() string {
	if e.EventID != "" {
		return fmt.Sprintf("realtimews: failed to send %s event %q: %v", e.EventType, e.EventID, e.Cause)
	}
	return fmt.Sprintf("realtimews: failed to send %s event: %v", e.EventType, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SendError) Unwrap() error {
	return e.Cause
}

// IsTimeout returns true if the error was caused by a timeout.
func (e *SendError) IsTimeout() bool {
	return errors.Is(e.Cause, ErrSendTimeout)
}

// EventError represents an inbound frame that could not be parsed.
type EventError struct {
	RawData []byte // The raw frame
	Cause   error  // The underlying parsing error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("realtimews: failed to parse server event: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *EventError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for EventError.
func (e *EventError) Is(target error) bool {
	return target == ErrInvalidEventData
}

// RealtimeError is what error listeners receive. It covers server "error"
// events, unparseable frames, socket failures, and failed sends and closes.
type RealtimeError struct {
	Message string      // Human-readable description
	Event   *ErrorEvent // The server error event, when the error came from the server
	Cause   error       // Underlying error, when available
}

func (e *RealtimeError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RealtimeError) Unwrap() error {
	return e.Cause
}

// EventID returns the event_id of the server error event, if any.
func (e *RealtimeError) EventID() string {
	if e.Event == nil {
		return ""
	}
	return e.Event.EventID
}

// newRealtimeError formats server error events the same way regardless of which
// listener ends up seeing them.
func newRealtimeError(event *ErrorEvent, message string, cause error) *RealtimeError {
	if event != nil {
		d := event.Error
		message = fmt.Sprintf("%s code=%s param=%s type=%s event_id=%s", d.Message, d.Code, d.Param, d.Type, d.EventID)
	} else if message == "" {
		message = "unknown error"
	}
	return &RealtimeError{Message: message, Event: event, Cause: cause}
}

// NewConfigError creates a new configuration error.
func NewConfigError(field, value, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewConnectionError creates a new connection error.
func NewConnectionError(url, operation string, cause error) *ConnectionError {
	return &ConnectionError{
		URL:       url,
		Operation: operation,
		Cause:     cause,
	}
}

// NewSendError creates a new send error.
func NewSendError(eventType, eventID string, cause error) *SendError {
	return &SendError{
		EventType: eventType,
		EventID:   eventID,
		Cause:     cause,
	}
}

// NewEventError creates a new event parsing error.
func NewEventError(rawData []byte, cause error) *EventError {
	return &EventError{
		RawData: rawData,
		Cause:   cause,
	}
}
