package linr

import (
	"errors"
	"fmt"
)

// Error is the closed set of failures a read can report.
//
// InvalidInput and OutOfRange are parse errors: the line was consumed but its
// content was unusable, and the caller may ask again. EndOfFile and Unknown
// are stream errors: the stream cannot produce more lines.
type Error uint8

const (
	// InvalidInput reports text that does not convert to the requested type,
	// or a line with the wrong number of fields.
	InvalidInput Error = 0b0001
	// OutOfRange reports a well-formed number that does not fit the type.
	OutOfRange Error = 0b0010
	// EndOfFile reports that the stream has no more lines.
	EndOfFile Error = 0b0101
	// Unknown reports a stream failure other than its end, or a type with
	// no parser.
	Unknown Error = 0b0110
)

// String returns a description of the error.
func (e Error) String() string {
	switch e {
	case InvalidInput:
		return "invalid input (failed to parse input)"
	case OutOfRange:
		return "parsed value can't be contained within given type"
	case EndOfFile:
		return "end of stream has been reached"
	case Unknown:
		return "unknown error (stream failure or unsupported type)"
	}
	return fmt.Sprintf("unknown error code %d", uint8(e))
}

// Error implements the error interface.
func (e Error) Error() string {
	return "linr: " + e.String()
}

// IsStream reports whether e leaves the stream unusable.
func (e Error) IsStream() bool {
	return e == EndOfFile || e == Unknown
}

// IsParse reports whether e is a recoverable parse failure.
func (e Error) IsParse() bool {
	return e == InvalidInput || e == OutOfRange
}

// FieldError ties an Error to the zero-based field that produced it.
type FieldError struct {
	Index int
	Code  Error
}

// Error formats the field error message.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linr: field %d: %s", e.Index+1, e.Code.String())
}

// Unwrap returns the error code so errors.Is matches it.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Code
}

// CodeOf extracts the Error carried by err.
// It reports false when err is nil or carries no Error.
func CodeOf(err error) (Error, bool) {
	var code Error
	if err == nil || !errors.As(err, &code) || code == 0 {
		return 0, false
	}
	return code, true
}

// codeFor maps an error returned by a user parser to an Error.
// Errors that carry no code count as invalid input.
func codeFor(err error) Error {
	if code, ok := CodeOf(err); ok {
		return code
	}
	return InvalidInput
}
