package linesource

import (
	"bufio"
	"errors"
	"io"
)

// Reader is a Source that allocates fresh storage for every line.
// Lines it returns never alias each other and may be retained freely.
type Reader struct {
	br  *bufio.Reader
	err error
}

// NewReader creates an ephemeral Source reading from r.
// The stream is wrapped in a bufio.Reader once, so bytes read ahead of a line
// are kept for the next call.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	return &Reader{br: asBufio(r)}, nil
}

// ReadLine returns the next line, or io.EOF when the stream is exhausted.
func (r *Reader) ReadLine() (Line, error) {
	if r.err != nil {
		return Line{}, r.err
	}

	data, err := r.br.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			r.err = &StreamError{Err: err}
			return Line{}, r.err
		}
		if len(data) == 0 {
			return Line{}, io.EOF
		}
		// Final line without a terminator; the next call reports io.EOF.
	}

	b, _ := trimTerminator(data)
	return Line{b: b}, nil
}

// Err returns the sticky stream error, if any.
func (r *Reader) Err() error {
	return r.err
}

func asBufio(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
