package errors

import (
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
)

// ErrorType represents different categories of copy failures
type ErrorType int

const (
	ErrorTypeMissingURL ErrorType = iota
	ErrorTypeNetwork
	ErrorTypeHTTP
	ErrorTypeEmptyContent
	ErrorTypeClipboardUnavailable
	ErrorTypeValidation
	ErrorTypeUnknown
)

// String returns the taxonomy name used in logs
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeMissingURL:
		return "missing_url"
	case ErrorTypeNetwork:
		return "network_error"
	case ErrorTypeHTTP:
		return "http_error"
	case ErrorTypeEmptyContent:
		return "empty_content"
	case ErrorTypeClipboardUnavailable:
		return "clipboard_unavailable"
	case ErrorTypeValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

// CopyError represents a structured copy failure with context
type CopyError struct {
	Type       ErrorType
	Message    string
	Underlying error
	Context    map[string]string

	// StatusCode and StatusText are set for ErrorTypeHTTP
	StatusCode int
	StatusText string
}

// Error implements the error interface
func (e *CopyError) Error() string {
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *CopyError) Unwrap() error {
	return e.Underlying
}

// ErrMissingURL is returned when a trigger carries no resource locator
var ErrMissingURL = &CopyError{
	Type:    ErrorTypeMissingURL,
	Message: "trigger has no url",
}

// WrapNetworkError wraps a transport failure that happened before any response arrived
func WrapNetworkError(err error, rawURL string) *CopyError {
	if err == nil {
		return nil
	}

	return &CopyError{
		Type:       ErrorTypeNetwork,
		Message:    fmt.Sprintf("Could not reach %s: %s", hostOf(rawURL), describeNetworkError(err)),
		Underlying: err,
		Context:    map[string]string{"url": rawURL},
	}
}

// NewHTTPError reports a response whose status code is not 200
func NewHTTPError(rawURL string, code int, statusText string) *CopyError {
	return &CopyError{
		Type:       ErrorTypeHTTP,
		Message:    fmt.Sprintf("GET returned %d %s", code, statusText),
		Context:    map[string]string{"url": rawURL},
		StatusCode: code,
		StatusText: statusText,
	}
}

// NewEmptyContentError reports a successful fetch whose body holds nothing to copy
func NewEmptyContentError(rawURL string) *CopyError {
	return &CopyError{
		Type:    ErrorTypeEmptyContent,
		Message: "Remote file is empty",
		Context: map[string]string{"url": rawURL},
	}
}

// WrapClipboardError wraps a failed clipboard write
func WrapClipboardError(err error) *CopyError {
	if err == nil {
		return nil
	}

	return &CopyError{
		Type:       ErrorTypeClipboardUnavailable,
		Message:    fmt.Sprintf("Clipboard write failed: %s", err.Error()),
		Underlying: err,
	}
}

// WrapValidationError wraps validation errors
func WrapValidationError(err error, input string) *CopyError {
	if err == nil {
		return nil
	}

	return &CopyError{
		Type:       ErrorTypeValidation,
		Message:    fmt.Sprintf("Invalid input '%s': %s", input, err.Error()),
		Underlying: err,
		Context:    map[string]string{"input": input},
	}
}

// As extracts a CopyError from an error chain
func As(err error) (*CopyError, bool) {
	var ce *CopyError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown for foreign errors
func TypeOf(err error) ErrorType {
	if ce, ok := As(err); ok {
		return ce.Type
	}
	return ErrorTypeUnknown
}

// UserFriendlyMessage returns a user-friendly error message
func (e *CopyError) UserFriendlyMessage() string {
	switch e.Type {
	case ErrorTypeMissingURL:
		return "Nothing to copy - the selected entry has no file link"
	case ErrorTypeNetwork:
		return e.Message + " - check your network connection"
	case ErrorTypeHTTP:
		if e.StatusCode == 404 {
			return e.Message + " - the file may have been removed from the bundle"
		}
		return e.Message
	case ErrorTypeEmptyContent:
		return e.Message + " - nothing was copied"
	case ErrorTypeClipboardUnavailable:
		return e.Message + " - install xclip, xsel or wl-clipboard, or use --clipboard osc52"
	case ErrorTypeValidation:
		return e.Message
	default:
		return e.Message
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// describeNetworkError trims the transport noise net/http adds around the cause
func describeNetworkError(err error) string {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return "host not found"
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		if opErr.Err != nil {
			return opErr.Err.Error()
		}
		return opErr.Op + " failed"
	}

	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}

	return err.Error()
}
