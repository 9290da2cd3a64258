package weather

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures surfaced by the provider adapter, the normalizer
// and the insight engine.
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindNetwork    ErrorKind = "network_error"
	KindProvider   ErrorKind = "provider_error"
	KindParse      ErrorKind = "parse_error"
	KindValidation ErrorKind = "validation_error"
)

// Error is the typed failure carried across the boundary layer as {kind, httpStatus, message}.
type Error struct {
	Kind       ErrorKind
	HTTPStatus int
	// ProviderCode is the provider's own error code, when it sent one.
	ProviderCode int
	Message      string
	Err          error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError reports that the outbound call exceeded its deadline.
func NewTimeoutError(err error) *Error {
	return &Error{
		Kind:       KindTimeout,
		HTTPStatus: http.StatusGatewayTimeout,
		Message:    "request timeout, please try again",
		Err:        err,
	}
}

// NewNetworkError reports that no response was received from the provider.
func NewNetworkError(msg string, err error) *Error {
	return &Error{
		Kind:       KindNetwork,
		HTTPStatus: http.StatusBadGateway,
		Message:    msg,
		Err:        err,
	}
}

// NewProviderError reports a non-2xx provider response.
func NewProviderError(status, providerCode int, msg string) *Error {
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &Error{
		Kind:         KindProvider,
		HTTPStatus:   status,
		ProviderCode: providerCode,
		Message:      msg,
	}
}

// NewParseError reports a malformed or unexpected provider payload.
func NewParseError(msg string, err error) *Error {
	return &Error{
		Kind:       KindParse,
		HTTPStatus: http.StatusBadGateway,
		Message:    msg,
		Err:        err,
	}
}

// NewValidationError reports caller input outside the contract.
func NewValidationError(msg string) *Error {
	return &Error{
		Kind:       KindValidation,
		HTTPStatus: http.StatusBadRequest,
		Message:    msg,
	}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not a typed weather error.
func KindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}
