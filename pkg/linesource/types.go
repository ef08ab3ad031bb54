// Package linesource acquires single lines of text from a byte stream.
package linesource

import (
	"errors"
	"fmt"
)

// DefaultBufferSize is the initial capacity of a BufReader when none is given.
const DefaultBufferSize = 1 << 10

// minBufferSize keeps doubling meaningful for tiny requested sizes.
const minBufferSize = 2

// Line is one line of input with its terminator removed.
//
// A Line returned by a BufReader shares storage with the reader and is only
// valid until the next ReadLine call on that reader. Copy it (String) to keep it.
type Line struct {
	b []byte
}

// Bytes returns the line content without the terminator.
func (l Line) Bytes() []byte {
	return l.b
}

// String returns an owned copy of the line content.
func (l Line) String() string {
	return string(l.b)
}

// Len returns the number of bytes in the line.
func (l Line) Len() int {
	return len(l.b)
}

// Source yields one line per call.
// Implementations are for sequential use by a single goroutine.
type Source interface {
	// ReadLine returns the next line.
	// Returns io.EOF when no more lines are available.
	ReadLine() (Line, error)

	// Err returns the stream error that broke the source, if any.
	// io.EOF is never reported here.
	Err() error
}

// ErrNilReader is returned by constructors given a nil stream.
var ErrNilReader = errors.New("linesource: reader cannot be nil")

// StreamError is a failure of the underlying stream, as opposed to its end.
type StreamError struct {
	Err error
}

// Error formats the stream error message.
func (e *StreamError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linesource: stream error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *StreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// trimTerminator strips a trailing "\n" and a "\r" directly before it.
// It reports whether a newline was present.
func trimTerminator(b []byte) ([]byte, bool) {
	n := len(b)
	if n == 0 || b[n-1] != '\n' {
		return b, false
	}
	n--
	if n > 0 && b[n-1] == '\r' {
		n--
	}
	return b[:n], true
}
