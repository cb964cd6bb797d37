// Package errors provides shared error types for the BAG and RCE registry clients.
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an error for the calling assistant.
type Kind string

const (
	KindInvalidInput        Kind = "InvalidInput"
	KindAmbiguousAddress    Kind = "AmbiguousAddress"
	KindNotFound            Kind = "NotFound"
	KindUpstreamUnavailable Kind = "UpstreamUnavailable"
)

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("%s: validation failed for %s=%q: %s", KindInvalidInput, e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: validation failed for %s: %s", KindInvalidInput, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: validation failed: %s", KindInvalidInput, e.Message)
}

// Kind returns KindInvalidInput.
func (e *ValidationError) Kind() Kind { return KindInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NotFoundError indicates the registry returned no match.
type NotFoundError struct {
	Registry   string // "bag" or "rce"
	Identifier string // address description or identifier
	Hint       string // optional recovery suggestion
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s: no verblijfsobject found in %s registry for %s", KindNotFound, e.Registry, e.Identifier)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(registry, identifier string) *NotFoundError {
	return &NotFoundError{
		Registry:   registry,
		Identifier: identifier,
	}
}

// AmbiguousAddressError indicates the address matched more than one
// verblijfsobject. Candidates describes each match. Truncated is set when
// the registry returned more rows than were requested, so Candidates is a
// lower bound rather than the full list.
type AmbiguousAddressError struct {
	Address    string
	Candidates []string
	Truncated  bool
}

func (e *AmbiguousAddressError) Error() string {
	count := strconv.Itoa(len(e.Candidates))
	if e.Truncated {
		count = "at least " + count
	}
	msg := fmt.Sprintf("%s: %s verblijfsobjecten match %s; add house_letter or house_suffix to narrow the search",
		KindAmbiguousAddress, count, e.Address)
	if len(e.Candidates) > 0 {
		msg += ": " + strings.Join(e.Candidates, "; ")
	}
	return msg
}

// Kind returns KindAmbiguousAddress.
func (e *AmbiguousAddressError) Kind() Kind { return KindAmbiguousAddress }

// Count returns the number of listed candidates.
func (e *AmbiguousAddressError) Count() int { return len(e.Candidates) }

// UpstreamError indicates the registry endpoint could not be reached or
// returned an unusable response.
type UpstreamError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: registry endpoint %s returned HTTP %d", KindUpstreamUnavailable, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: registry endpoint %s: %v", KindUpstreamUnavailable, e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Kind returns KindUpstreamUnavailable.
func (e *UpstreamError) Kind() Kind { return KindUpstreamUnavailable }

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAmbiguous returns true if err is or wraps an AmbiguousAddressError.
func IsAmbiguous(err error) bool {
	var target *AmbiguousAddressError
	return errors.As(err, &target)
}

// IsUpstream returns true if err is or wraps an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// KindOf reports the Kind of err, defaulting to KindUpstreamUnavailable for
// errors that carry no classification.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUpstreamUnavailable
}
