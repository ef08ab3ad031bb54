package linr

import (
	"errors"
	"io"
	"os"

	"github.com/ccollicutt/linr/pkg/linesource"
	"github.com/ccollicutt/linr/pkg/split"
)

// Reader reads typed values from a line-oriented stream.
//
// Every read consumes exactly one line. A Reader is not safe for concurrent
// use; give each goroutine its own Reader.
type Reader struct {
	src linesource.Source
	out io.Writer
	reg *Registry
}

// Option configures a Reader.
type Option func(*Reader)

// WithOutput sets the sink prompts are written to (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Reader) {
		if w != nil {
			r.out = w
		}
	}
}

// WithRegistry sets the parser registry (default DefaultRegistry).
func WithRegistry(reg *Registry) Option {
	return func(r *Reader) {
		if reg != nil {
			r.reg = reg
		}
	}
}

// NewReader creates a Reader that allocates each line separately.
func NewReader(in io.Reader, opts ...Option) (*Reader, error) {
	src, err := linesource.NewReader(in)
	if err != nil {
		return nil, err
	}
	return NewReaderFrom(src, opts...)
}

// NewBufReader creates a Reader that reuses one growable line buffer of
// initial capacity size (linesource.DefaultBufferSize when zero).
func NewBufReader(in io.Reader, size int, opts ...Option) (*Reader, error) {
	src, err := linesource.NewBufReader(in, size)
	if err != nil {
		return nil, err
	}
	return NewReaderFrom(src, opts...)
}

// NewReaderFrom creates a Reader over an existing line source.
func NewReaderFrom(src linesource.Source, opts ...Option) (*Reader, error) {
	if src == nil {
		return nil, linesource.ErrNilReader
	}
	r := &Reader{
		src: src,
		out: os.Stdout,
		reg: DefaultRegistry,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Registry returns the registry the reader parses with.
func (r *Reader) Registry() *Registry {
	return r.reg
}

// ReadLine reads one whole line as text. The delimiter option is ignored.
func (r *Reader) ReadLine(opts ...ReadOption) Result[string] {
	line, code := r.acquire(newReadConfig(opts))
	if code != 0 {
		return Fail[string](code)
	}
	return Ok(line.String())
}

// Scan reads one line, splits it into len(steps) fields and runs the steps
// in order. Nothing is stored unless every field parses. The returned error
// carries an Error code (see CodeOf).
func (r *Reader) Scan(steps []Step, opts ...ReadOption) error {
	fields, code := r.fields(newReadConfig(opts), len(steps))
	if code != 0 {
		return code
	}
	return ParseInto(r.reg, fields, steps...)
}

// Read reads one line holding a single T.
func Read[T any](r *Reader, opts ...ReadOption) Result[T] {
	fields, code := r.fields(newReadConfig(opts), 1)
	if code != 0 {
		return Fail[T](code)
	}
	res := Parse[T](r.reg, fields[0])
	if !res.OK() {
		return failAt[T](res.Code(), 0)
	}
	return res
}

// Read2 reads one line holding an A and a B.
func Read2[A, B any](r *Reader, opts ...ReadOption) Result[Tuple2[A, B]] {
	fields, code := r.fields(newReadConfig(opts), 2)
	if code != 0 {
		return Fail[Tuple2[A, B]](code)
	}
	return ParseFields2[A, B](r.reg, fields)
}

// Read3 reads one line holding three values.
func Read3[A, B, C any](r *Reader, opts ...ReadOption) Result[Tuple3[A, B, C]] {
	fields, code := r.fields(newReadConfig(opts), 3)
	if code != 0 {
		return Fail[Tuple3[A, B, C]](code)
	}
	return ParseFields3[A, B, C](r.reg, fields)
}

// Read4 reads one line holding four values.
func Read4[A, B, C, D any](r *Reader, opts ...ReadOption) Result[Tuple4[A, B, C, D]] {
	fields, code := r.fields(newReadConfig(opts), 4)
	if code != 0 {
		return Fail[Tuple4[A, B, C, D]](code)
	}
	return ParseFields4[A, B, C, D](r.reg, fields)
}

// Read5 reads one line holding five values.
func Read5[A, B, C, D, E any](r *Reader, opts ...ReadOption) Result[Tuple5[A, B, C, D, E]] {
	fields, code := r.fields(newReadConfig(opts), 5)
	if code != 0 {
		return Fail[Tuple5[A, B, C, D, E]](code)
	}
	return ParseFields5[A, B, C, D, E](r.reg, fields)
}

// ReadArray reads one line holding exactly n values of type T.
// n below one fails with InvalidInput before any I/O.
func ReadArray[T any](r *Reader, n int, opts ...ReadOption) Result[[]T] {
	if n < 1 {
		return Fail[[]T](InvalidInput)
	}
	fields, code := r.fields(newReadConfig(opts), n)
	if code != 0 {
		return Fail[[]T](code)
	}
	return ParseArray[T](r.reg, fields)
}

// fields acquires one line and splits it into n fields. Stream failures take
// precedence over a line with the wrong number of fields.
func (r *Reader) fields(cfg readConfig, n int) ([][]byte, Error) {
	if n < 1 {
		return nil, InvalidInput
	}
	line, code := r.acquire(cfg)
	if code != 0 {
		return nil, code
	}
	fields, ok := split.Fields(line.Bytes(), cfg.delim, n)
	if !ok {
		return nil, InvalidInput
	}
	return fields, 0
}

// acquire writes the prompt, refuses to touch a broken stream and reads one
// line.
func (r *Reader) acquire(cfg readConfig) (linesource.Line, Error) {
	if cfg.hasPrompt {
		_, _ = io.WriteString(r.out, cfg.prompt)
	}
	if r.src.Err() != nil {
		return linesource.Line{}, Unknown
	}

	line, err := r.src.ReadLine()
	switch {
	case err == nil:
		return line, 0
	case errors.Is(err, io.EOF):
		return linesource.Line{}, EndOfFile
	default:
		return linesource.Line{}, Unknown
	}
}
