package api

import (
	"errors"
	"fmt"
)

// DefaultErrorMessage is shown when neither the server nor the transport
// supplied a message.
const DefaultErrorMessage = "Something went wrong"

var (
	// ErrTimeout is wrapped when a call exceeds the client timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrNotFound is wrapped for 404 responses.
	ErrNotFound = errors.New("not found")
)

// Error is the single error value every client operation returns. Message is
// ready for display.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the display message from any error, falling back to
// DefaultErrorMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// IsTimeout reports whether err is a client timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// pickMessage applies the precedence server → transport → default.
func pickMessage(server, transport string) string {
	switch {
	case server != "":
		return server
	case transport != "":
		return transport
	default:
		return DefaultErrorMessage
	}
}

func statusMessage(status int) string {
	if status == 0 {
		return ""
	}
	return fmt.Sprintf("Request failed with status code %d", status)
}
