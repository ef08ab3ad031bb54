package linr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		code   Error
		stream bool
		parse  bool
	}{
		{InvalidInput, false, true},
		{OutOfRange, false, true},
		{EndOfFile, true, false},
		{Unknown, true, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.stream, tt.code.IsStream(), "%v.IsStream()", tt.code)
		assert.Equal(t, tt.parse, tt.code.IsParse(), "%v.IsParse()", tt.code)
		assert.NotEmpty(t, tt.code.String())
	}
}

func TestErrorCodeValues(t *testing.T) {
	// The numeric values are part of the public contract.
	assert.EqualValues(t, 1, InvalidInput)
	assert.EqualValues(t, 2, OutOfRange)
	assert.EqualValues(t, 5, EndOfFile)
	assert.EqualValues(t, 6, Unknown)
	assert.Contains(t, Error(99).String(), "99")
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("reading: %w", &FieldError{Index: 2, Code: OutOfRange})

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, OutOfRange, code)
	assert.ErrorIs(t, wrapped, OutOfRange)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = CodeOf(nil)
	assert.False(t, ok)
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Index: 0, Code: InvalidInput}
	assert.Equal(t, "linr: field 1: invalid input (failed to parse input)", err.Error())
}

func TestResult(t *testing.T) {
	ok := Ok(5)
	assert.True(t, ok.OK())
	assert.NoError(t, ok.Err())
	assert.Equal(t, Error(0), ok.Code())
	assert.Equal(t, -1, ok.FieldIndex())
	assert.Equal(t, 5, ok.ValueOr(9))

	fail := Fail[int](OutOfRange)
	assert.False(t, fail.OK())
	assert.Equal(t, 9, fail.ValueOr(9))
	assert.Equal(t, OutOfRange, fail.Err())
	v, err := fail.Unpack()
	assert.Zero(t, v)
	assert.ErrorIs(t, err, OutOfRange)

	var zero Result[string]
	assert.False(t, zero.OK())
	assert.Equal(t, Unknown, zero.Code())
	assert.Equal(t, -1, zero.FieldIndex())
	assert.Equal(t, Unknown, Fail[int](0).Code())
}
