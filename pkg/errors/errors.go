package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError is one entry of the "errors" array of a 422 response.
type FieldError struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message,omitempty"`
}

// APIError is a non-2xx response from the issues API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
	Errors     []FieldError
}

func NewAPIError(statusCode int, message, url string, fieldErrors ...FieldError) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		URL:        url,
		Errors:     fieldErrors,
	}
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HTTP %d", e.StatusCode)
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.URL != "" {
		fmt.Fprintf(&sb, " (%s)", e.URL)
	}
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "; %s.%s %s", fe.Resource, fe.Field, fe.Code)
	}
	return sb.String()
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsValidationFailed(err error) bool {
	return StatusCode(err) == http.StatusUnprocessableEntity
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsRetryable reports whether the request may succeed if sent again:
// server errors and rate limiting.
func IsRetryable(err error) bool {
	var e *APIError
	if !errors.As(err, &e) {
		return false
	}
	switch {
	case e.StatusCode >= http.StatusInternalServerError:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode == http.StatusForbidden && strings.Contains(strings.ToLower(e.Message), "rate limit"):
		return true
	}
	return false
}

// PageNotLoadedError is returned when a page fails its load validation.
type PageNotLoadedError struct {
	Page   string
	Reason string
	Err    error
}

func NewPageNotLoadedError(page, reason string, err error) *PageNotLoadedError {
	return &PageNotLoadedError{Page: page, Reason: reason, Err: err}
}

func (e *PageNotLoadedError) Error() string {
	return fmt.Sprintf("page %q not loaded: %s", e.Page, e.Reason)
}

func (e *PageNotLoadedError) Unwrap() error {
	return e.Err
}

func IsPageNotLoadedError(err error) bool {
	var e *PageNotLoadedError
	return errors.As(err, &e)
}

// TabNotImplementedError is returned for repository tabs without navigation support.
type TabNotImplementedError struct {
	Tab string
}

func NewTabNotImplementedError(tab string) *TabNotImplementedError {
	return &TabNotImplementedError{Tab: tab}
}

func (e *TabNotImplementedError) Error() string {
	return fmt.Sprintf("tab %q not implemented", e.Tab)
}

func IsTabNotImplementedError(err error) bool {
	var e *TabNotImplementedError
	return errors.As(err, &e)
}

// ElementNotFoundError is returned when no element matches a selector and text.
type ElementNotFoundError struct {
	Selector string
	Text     string
}

func NewElementNotFoundError(selector, text string) *ElementNotFoundError {
	return &ElementNotFoundError{Selector: selector, Text: text}
}

func (e *ElementNotFoundError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("no element matching %q", e.Selector)
	}
	return fmt.Sprintf("no element with text %q in %q", e.Text, e.Selector)
}

func IsElementNotFoundError(err error) bool {
	var e *ElementNotFoundError
	return errors.As(err, &e)
}

// MismatchError reports a field whose actual value differs from the expected one.
type MismatchError struct {
	Field    string
	Expected any
	Actual   any
}

func NewMismatchError(field string, expected, actual any) *MismatchError {
	return &MismatchError{Field: field, Expected: expected, Actual: actual}
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch. Expected: %v, Got: %v", e.Field, e.Expected, e.Actual)
}

func IsMismatchError(err error) bool {
	var e *MismatchError
	return errors.As(err, &e)
}
