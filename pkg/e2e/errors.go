package e2e

import (
	"fmt"
	"time"
)

// ConfigError reports invalid client configuration detected at construction
// time. It is the only failure in this package that propagates as a hard
// error; call-time failures degrade to error strings (see Call).
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("e2e: config: %s: %s", e.Field, e.Reason)
}

// TimeoutError reports that a request exceeded the client's timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to E2E LLM timed out after %d seconds", int(e.Timeout.Seconds()))
}

// StatusError reports a non-2xx HTTP response from the endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Body)
}

// TransportError reports a network-level failure: connection refused, DNS
// resolution, TLS handshake, and the like.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
