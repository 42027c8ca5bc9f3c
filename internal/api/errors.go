package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every failure to complete a round trip,
	// timeouts included.
	ErrTransport = errors.New("api: transport failure")
	// ErrTimeout matches round trips that exceeded the client timeout or the
	// caller's deadline.
	ErrTimeout = errors.New("api: request timed out")
	// ErrStatus matches non-2xx responses.
	ErrStatus = errors.New("api: unexpected status")
	// ErrDecode matches responses that are not a valid envelope.
	ErrDecode = errors.New("api: malformed response")
	// ErrInvalidArgument is returned before any request is sent.
	ErrInvalidArgument = errors.New("api: invalid argument")
)

// TransportError reports a request that did not complete.
type TransportError struct {
	Op      string
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	kind := "transport failure"
	if e.Timeout {
		kind = "timeout"
	}
	return fmt.Sprintf("api: %s: %s %s: %s: %v", e.Op, e.Method, e.URL, kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport || (e.Timeout && target == ErrTimeout)
}

// StatusError reports a non-2xx response. Message is set when the body was
// an envelope carrying one.
type StatusError struct {
	Op         string
	StatusCode int
	Body       []byte
	Message    *string
}

func (e *StatusError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("api: %s: status %d: %s", e.Op, e.StatusCode, *e.Message)
	}
	return fmt.Sprintf("api: %s: status %d", e.Op, e.StatusCode)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// DecodeError reports a 2xx body that does not conform to the envelope or to
// the payload shape.
type DecodeError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: %s: decode response (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func invalidArgument(op, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, op, fmt.Sprintf(format, args...))
}
