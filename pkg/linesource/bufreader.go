package linesource

import (
	"bufio"
	"errors"
	"io"
)

// BufReader is a Source that reuses one growable buffer across calls.
//
// The buffer doubles whenever a line does not fit and never shrinks. Each
// returned Line is bounded by the bytes read for that line, so a short line
// never exposes bytes left over from an earlier, longer one.
type BufReader struct {
	br  *bufio.Reader
	buf []byte
	err error
}

// NewBufReader creates a buffered Source reading from r with an initial
// buffer of size bytes. Sizes below the minimum are raised to it; zero
// selects DefaultBufferSize.
func NewBufReader(r io.Reader, size int) (*BufReader, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if size == 0 {
		size = DefaultBufferSize
	}
	if size < minBufferSize {
		size = minBufferSize
	}
	return &BufReader{
		br:  asBufio(r),
		buf: make([]byte, size),
	}, nil
}

// ReadLine returns the next line, or io.EOF when the stream is exhausted.
// The returned Line is invalidated by the next call.
func (r *BufReader) ReadLine() (Line, error) {
	if r.err != nil {
		return Line{}, r.err
	}

	n := 0
	for {
		chunk, err := r.br.ReadSlice('\n')

		// chunk is only valid until the next read on br; drain it fully.
		for len(chunk) > 0 {
			if n == len(r.buf) {
				r.grow(n)
			}
			c := copy(r.buf[n:], chunk)
			n += c
			chunk = chunk[c:]
		}

		switch {
		case err == nil:
			b, _ := trimTerminator(r.buf[:n])
			return Line{b: b}, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if n == 0 {
				return Line{}, io.EOF
			}
			return Line{b: r.buf[:n]}, nil
		default:
			r.err = &StreamError{Err: err}
			return Line{}, r.err
		}
	}
}

// Err returns the sticky stream error, if any.
func (r *BufReader) Err() error {
	return r.err
}

// Cap returns the current buffer capacity in bytes.
func (r *BufReader) Cap() int {
	return len(r.buf)
}

// grow doubles the buffer, keeping the first used bytes.
func (r *BufReader) grow(used int) {
	next := make([]byte, 2*len(r.buf))
	copy(next, r.buf[:used])
	r.buf = next
}
