package provider

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the provider answered 200 with a body that is not JSON.
var ErrMalformedResponse = errors.New("provider returned malformed json")

// UpstreamError is returned when the provider answers with a non-200 status.
// Body is kept verbatim so callers can pass it through for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider responded with status %d", e.StatusCode)
}

// TransportError wraps failures that prevented a response from being received.
type TransportError struct {
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider request failed: %v", e.Underlying)
}

// Unwrap supports error unwrapping
func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// AsUpstream extracts an UpstreamError from err.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
