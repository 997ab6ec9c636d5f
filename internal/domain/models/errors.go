package models

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies calculation failures so callers can tell bad input
// apart from incomplete data or infrastructure trouble.
type ErrorKind string

const (
	KindValidation             ErrorKind = "validation"
	KindEphemerisUnavailable   ErrorKind = "ephemeris_unavailable"
	KindUnsupportedHouseSystem ErrorKind = "unsupported_house_system"
	KindProviderTimeout        ErrorKind = "provider_timeout"
	KindCacheUnavailable       ErrorKind = "cache_unavailable"
	KindInternal               ErrorKind = "internal"
)

// DomainError carries an ErrorKind along with a human readable message.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports bad caller input. Raised before any cache
// lookup or ephemeris work.
func NewValidationError(format string, a ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, a...)}
}

// NewEphemerisUnavailable reports an instant outside the supported epoch.
func NewEphemerisUnavailable(format string, a ...interface{}) *DomainError {
	return &DomainError{Kind: KindEphemerisUnavailable, Message: fmt.Sprintf(format, a...)}
}

// NewUnsupportedHouseSystem reports geometry undefined for the input,
// e.g. Placidus at polar latitudes.
func NewUnsupportedHouseSystem(format string, a ...interface{}) *DomainError {
	return &DomainError{Kind: KindUnsupportedHouseSystem, Message: fmt.Sprintf(format, a...)}
}

// NewProviderTimeout reports a cache or computation call exceeding its bound.
func NewProviderTimeout(err error) *DomainError {
	return &DomainError{Kind: KindProviderTimeout, Message: "operation exceeded its deadline", Err: err}
}

// KindOf extracts the ErrorKind from an error chain. Context deadline
// errors classify as provider timeouts; anything unclassified is internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindProviderTimeout
	}
	return KindInternal
}
