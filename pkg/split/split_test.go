package split

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		delim  byte
		n      int
		want   []string
		wantOK bool
	}{
		{name: "exact", input: "1 2 3", delim: ' ', n: 3, want: []string{"1", "2", "3"}, wantOK: true},
		{name: "repeatedAndLeadingDelims", input: "  1   2  3", delim: ' ', n: 3, want: []string{"1", "2", "3"}, wantOK: true},
		{name: "trailingDelims", input: "1 2 3   ", delim: ' ', n: 3, want: []string{"1", "2", "3"}, wantOK: true},
		{name: "tooFew", input: "1 2", delim: ' ', n: 3, wantOK: false},
		{name: "tooMany", input: "1 2 3 4", delim: ' ', n: 3, wantOK: false},
		{name: "emptyInput", input: "", delim: ' ', n: 1, wantOK: false},
		{name: "onlyDelims", input: "    ", delim: ' ', n: 1, wantOK: false},
		{name: "zeroArity", input: "1", delim: ' ', n: 0, wantOK: false},
		{name: "negativeArity", input: "1", delim: ' ', n: -2, wantOK: false},
		{name: "customDelim", input: "a,b,,c", delim: ',', n: 3, want: []string{"a", "b", "c"}, wantOK: true},
		{name: "spacesKeptWithOtherDelim", input: "Color { 1 2 3 }", delim: '\n', n: 1, want: []string{"Color { 1 2 3 }"}, wantOK: true},
		{name: "newlineEndsScanning", input: "a b\nc", delim: ' ', n: 2, want: []string{"a", "b"}, wantOK: true},
		{name: "newlineMidField", input: "ab\ncd", delim: ' ', n: 1, want: []string{"ab"}, wantOK: true},
		{name: "nulEndsScanning", input: "x y\x00z", delim: ' ', n: 2, want: []string{"x", "y"}, wantOK: true},
		{name: "fieldsAfterNewlineIgnored", input: "a\nb c", delim: ' ', n: 3, wantOK: false},
		{name: "singleFieldToEnd", input: "  word", delim: ' ', n: 1, want: []string{"word"}, wantOK: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := FieldsString(tc.input, tc.delim, tc.n)
			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				assert.Nil(t, got, "failed split must not return fields")
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFields_AliasesLine(t *testing.T) {
	line := []byte("ab cd")
	got, ok := Fields(line, ' ', 2)
	assert.True(t, ok)

	line[0] = 'X'
	assert.Equal(t, "Xb", string(got[0]))
}

func TestCount(t *testing.T) {
	tests := []struct {
		input string
		delim byte
		want  int
	}{
		{"", ' ', 0},
		{"   ", ' ', 0},
		{"a", ' ', 1},
		{"  a  b c ", ' ', 3},
		{"a,b,,c", ',', 3},
		{"a b\nc d", ' ', 2},
	}

	for _, tt := range tests {
		if got := Count([]byte(tt.input), tt.delim); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCountAgreesWithFields(t *testing.T) {
	inputs := []string{"1 2 3", "  x  ", "a\tb", strings.Repeat("z ", 10)}
	for _, in := range inputs {
		n := Count([]byte(in), ' ')
		if n == 0 {
			continue
		}
		if _, ok := Fields([]byte(in), ' ', n); !ok {
			t.Errorf("Fields(%q, %d) failed, Count said %d fields", in, n, n)
		}
	}
}

func TestFields_ArityBeyondLine(t *testing.T) {
	t.Parallel()

	for _, n := range []int{math.MaxInt, 1 << 33, 4} {
		got, ok := Fields([]byte("1 2 3"), ' ', n)
		assert.False(t, ok, "n=%d", n)
		assert.Nil(t, got, "n=%d", n)
	}

	got, ok := FieldsString("1 2 3", ' ', math.MaxInt)
	assert.False(t, ok)
	assert.Nil(t, got)

	got2, ok := Fields([]byte("1 2 3"), ' ', 3)
	assert.True(t, ok)
	assert.Len(t, got2, 3)
}
