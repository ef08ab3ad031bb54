package linr

// Result holds either a value or an Error, never both.
// The zero Result is a failure with Unknown.
type Result[T any] struct {
	value T
	code  Error
	index int
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, index: -1, ok: true}
}

// Fail wraps an error code. A zero code is reported as Unknown.
func Fail[T any](code Error) Result[T] {
	return failAt[T](code, -1)
}

func failAt[T any](code Error, index int) Result[T] {
	if code == 0 {
		code = Unknown
	}
	return Result[T]{code: code, index: index}
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool {
	return r.ok
}

// Value returns the value, or the zero value of T on failure.
func (r Result[T]) Value() T {
	return r.value
}

// ValueOr returns the value, or def on failure.
func (r Result[T]) ValueOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// Code returns the error code, or zero on success.
func (r Result[T]) Code() Error {
	if r.ok {
		return 0
	}
	if r.code == 0 {
		return Unknown
	}
	return r.code
}

// FieldIndex returns the zero-based field that failed, or -1 when the
// failure is not tied to a field or the result is a success.
func (r Result[T]) FieldIndex() int {
	if r.ok || r.code == 0 {
		return -1
	}
	return r.index
}

// Err returns nil on success. Field failures are returned as *FieldError,
// other failures as the bare Error.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.index >= 0 && r.code != 0 {
		return &FieldError{Index: r.index, Code: r.code}
	}
	return r.Code()
}

// Unpack returns the value and error as a Go pair.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.Err()
}

// Tuple2 is the value of a two-field read.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Unpack returns the tuple members in field order.
func (t Tuple2[A, B]) Unpack() (A, B) {
	return t.V1, t.V2
}

// Tuple3 is the value of a three-field read.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Unpack returns the tuple members in field order.
func (t Tuple3[A, B, C]) Unpack() (A, B, C) {
	return t.V1, t.V2, t.V3
}

// Tuple4 is the value of a four-field read.
type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Unpack returns the tuple members in field order.
func (t Tuple4[A, B, C, D]) Unpack() (A, B, C, D) {
	return t.V1, t.V2, t.V3, t.V4
}

// Tuple5 is the value of a five-field read.
type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

// Unpack returns the tuple members in field order.
func (t Tuple5[A, B, C, D, E]) Unpack() (A, B, C, D, E) {
	return t.V1, t.V2, t.V3, t.V4, t.V5
}
