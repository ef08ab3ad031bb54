package linr

import (
	"bytes"
	"errors"
	"strconv"
	"time"
)

// Char is a single byte of text. Its built-in parser takes the first byte of
// the field verbatim, so it differs from uint8, which parses as a number.
type Char byte

// String returns the character as a one-byte string.
func (c Char) String() string {
	return string([]byte{byte(c)})
}

var (
	litTrue  = []byte("true")
	litFalse = []byte("false")
)

// hasBuiltin reports whether T has a built-in conversion.
func hasBuiltin[T any]() bool {
	var zero T
	switch any(zero).(type) {
	case bool, Char, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Duration, time.Time:
		return true
	}
	return false
}

// parseBuiltin converts field with the built-in conversion for T.
// Types without one report Unknown.
func parseBuiltin[T any](field []byte) (T, Error) {
	var zero T
	var v any
	var code Error

	switch any(zero).(type) {
	case bool:
		v, code = parseBool(field)
	case Char:
		v, code = parseChar(field)
	case string:
		v = string(field)
	case []byte:
		v = bytes.Clone(field)
	case int:
		v, code = parseSigned[int](field, strconv.IntSize)
	case int8:
		v, code = parseSigned[int8](field, 8)
	case int16:
		v, code = parseSigned[int16](field, 16)
	case int32:
		v, code = parseSigned[int32](field, 32)
	case int64:
		v, code = parseSigned[int64](field, 64)
	case uint:
		v, code = parseUnsigned[uint](field, strconv.IntSize)
	case uint8:
		v, code = parseUnsigned[uint8](field, 8)
	case uint16:
		v, code = parseUnsigned[uint16](field, 16)
	case uint32:
		v, code = parseUnsigned[uint32](field, 32)
	case uint64:
		v, code = parseUnsigned[uint64](field, 64)
	case float32:
		v, code = parseFloat[float32](field, 32)
	case float64:
		v, code = parseFloat[float64](field, 64)
	case time.Duration:
		v, code = parseDuration(field)
	case time.Time:
		v, code = parseTime(field, time.RFC3339)
	default:
		return zero, Unknown
	}

	if code != 0 {
		return zero, code
	}
	return v.(T), 0
}

// parseBool accepts a leading '0' or '1', or "true"/"false" in any case.
func parseBool(field []byte) (bool, Error) {
	if len(field) > 0 {
		switch field[0] {
		case '0':
			return false, 0
		case '1':
			return true, 0
		}
	}
	switch {
	case bytes.EqualFold(field, litTrue):
		return true, 0
	case bytes.EqualFold(field, litFalse):
		return false, 0
	}
	return false, InvalidInput
}

func parseChar(field []byte) (Char, Error) {
	if len(field) == 0 {
		return 0, InvalidInput
	}
	return Char(field[0]), 0
}

func parseSigned[T ~int | ~int8 | ~int16 | ~int32 | ~int64](field []byte, bits int) (T, Error) {
	n, err := strconv.ParseInt(string(field), 10, bits)
	if err != nil {
		return 0, numError(err)
	}
	return T(n), 0
}

func parseUnsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](field []byte, bits int) (T, Error) {
	n, err := strconv.ParseUint(string(field), 10, bits)
	if err != nil {
		return 0, numError(err)
	}
	return T(n), 0
}

func parseFloat[T ~float32 | ~float64](field []byte, bits int) (T, Error) {
	f, err := strconv.ParseFloat(string(field), bits)
	if err != nil {
		return 0, numError(err)
	}
	return T(f), 0
}

// numError separates overflow from malformed text.
func numError(err error) Error {
	if errors.Is(err, strconv.ErrRange) {
		return OutOfRange
	}
	return InvalidInput
}

func parseDuration(field []byte) (time.Duration, Error) {
	d, err := time.ParseDuration(string(field))
	if err != nil {
		return 0, InvalidInput
	}
	return d, 0
}

func parseTime(field []byte, layout string) (time.Time, Error) {
	t, err := time.Parse(layout, string(field))
	if err != nil {
		return time.Time{}, InvalidInput
	}
	return t, 0
}

// TimeParser returns a ParseFunc for time.Time values in layout. Register it
// to read timestamps in a layout other than RFC 3339.
func TimeParser(layout string) ParseFunc[time.Time] {
	return func(field []byte) (time.Time, error) {
		t, code := parseTime(field, layout)
		if code != 0 {
			return time.Time{}, code
		}
		return t, nil
	}
}
