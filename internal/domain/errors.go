package domain

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies upstream fetch failures.
type FetchErrorKind string

const (
	// FetchNetwork: the request never completed (DNS, connection reset).
	FetchNetwork FetchErrorKind = "network_failure"
	// FetchTimeout: the request exceeded the gateway's client timeout.
	FetchTimeout FetchErrorKind = "timeout"
	// FetchServerRejected: HTTP error status or a success:false payload.
	FetchServerRejected FetchErrorKind = "server_rejected"
	// FetchMalformed: a 2xx response missing the expected fields.
	FetchMalformed FetchErrorKind = "malformed_response"
)

// FetchError is the only error type the gateway returns.
type FetchError struct {
	Kind    FetchErrorKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError builds a FetchError wrapping an optional cause.
func NewFetchError(kind FetchErrorKind, message string, err error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Err: err}
}

// AsFetchError extracts a FetchError from an error chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ErrSessionNotFound is returned for operations on unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownScreen is returned when a session references an unconfigured screen.
var ErrUnknownScreen = errors.New("unknown screen")

// ErrUnknownDomain is returned when a domain is not configured for the screen.
var ErrUnknownDomain = errors.New("unknown domain")
