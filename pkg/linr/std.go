package linr

import (
	"os"
	"sync"
)

var (
	stdOnce   sync.Once
	stdReader *Reader
)

// Std returns the process-wide Reader over os.Stdin, writing prompts to
// os.Stdout. It is created on first use and shares DefaultRegistry.
func Std() *Reader {
	stdOnce.Do(func() {
		// os.Stdin is never nil, so construction cannot fail.
		stdReader, _ = NewReader(os.Stdin)
	})
	return stdReader
}

// ReadStd reads a single T from standard input.
func ReadStd[T any](opts ...ReadOption) Result[T] {
	return Read[T](Std(), opts...)
}

// ReadLineStd reads one whole line from standard input.
func ReadLineStd(opts ...ReadOption) Result[string] {
	return Std().ReadLine(opts...)
}
