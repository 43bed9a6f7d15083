// Package ows contains the OGC web service exception taxonomy. Every error
// that leaves an operation handler is either an *Exception or a *Composite.
package ows

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Code string

const (
	InvalidParameterValue    Code = "InvalidParameterValue"
	InvalidRequest           Code = "InvalidRequest"
	MissingParameterValue    Code = "MissingParameterValue"
	NoApplicableCode         Code = "NoApplicableCode"
	OperationNotSupported    Code = "OperationNotSupported"
	OptionNotSupported       Code = "OptionNotSupported"
	ResponseExceedsSizeLimit Code = "ResponseExceedsSizeLimit"
	VersionNegotiationFailed Code = "VersionNegotiationFailed"
)

type Exception struct {
	Code    Code
	Locator string
	Message string
	Cause   error
}

func (e *Exception) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	if e.Locator != "" {
		sb.WriteString("(" + e.Locator + ")")
	}
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

func (e *Exception) Unwrap() error {
	return e.Cause
}

// Status is the http status code an exception report for e is sent with.
// A NoApplicableCode without cause describes a rejected request.
func (e *Exception) Status() int {
	switch e.Code {
	case NoApplicableCode:
		if e.Cause == nil {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case OperationNotSupported:
		return http.StatusNotImplemented
	default:
		return http.StatusBadRequest
	}
}

func MissingParameter(name string) *Exception {
	return &Exception{
		Code:    MissingParameterValue,
		Locator: name,
		Message: fmt.Sprintf("the value for the mandatory parameter '%s' is missing in the request", name),
	}
}

func InvalidParameter(name string, format string, args ...any) *Exception {
	return &Exception{
		Code:    InvalidParameterValue,
		Locator: name,
		Message: fmt.Sprintf(format, args...),
	}
}

func OptionNotSupportedFor(locator string, format string, args ...any) *Exception {
	return &Exception{
		Code:    OptionNotSupported,
		Locator: locator,
		Message: fmt.Sprintf(format, args...),
	}
}

func OperationNotSupportedFor(operation string) *Exception {
	return &Exception{
		Code:    OperationNotSupported,
		Locator: operation,
		Message: fmt.Sprintf("the operation '%s' is not supported by this service", operation),
	}
}

func NoApplicable(cause error, format string, args ...any) *Exception {
	return &Exception{
		Code:    NoApplicableCode,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// SizeLimitExceeded is raised when a response would contain more time
// series or values than the named limit allows
func SizeLimitExceeded(limitName string, limit, actual int64) *Exception {
	return &Exception{
		Code:    ResponseExceedsSizeLimit,
		Locator: limitName,
		Message: fmt.Sprintf("the response would contain %d elements, which exceeds the configured %s of %d", actual, limitName, limit),
	}
}

// Wrap translates a low level error into a NoApplicableCode exception while
// passing errors that are already coded through unchanged
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	var exc *Exception
	if errors.As(err, &exc) {
		return err
	}

	var composite *Composite
	if errors.As(err, &composite) {
		return err
	}

	return NoApplicable(err, format, args...)
}

// AsException extracts the first coded exception from err, wrapping
// uncoded errors as NoApplicableCode
func AsException(err error) *Exception {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc
	}

	var composite *Composite
	if errors.As(err, &composite) && len(composite.Exceptions) > 0 {
		return composite.Exceptions[0]
	}

	return NoApplicable(err, "an unexpected error occurred")
}

// IsCode reports whether err carries the given exception code
func IsCode(err error, code Code) bool {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc.Code == code
	}
	return false
}
