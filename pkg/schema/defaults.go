package schema

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/linr/pkg/linesource"
)

// Default values for a schema.
const (
	DefaultDelimiter  = "space"
	DefaultBufferSize = linesource.DefaultBufferSize
	DefaultTimeLayout = time.RFC3339
)

// Environment variable names.
const (
	EnvDelimiter  = "LINR_DELIMITER"
	EnvBufferSize = "LINR_BUFFER_SIZE"
)

// delimiterNames maps readable names to delimiter bytes.
var delimiterNames = map[string]byte{
	"space":     ' ',
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"pipe":      '|',
	"colon":     ':',
	"newline":   '\n',
}

// DefaultSchema returns a schema with sensible defaults.
func DefaultSchema() *Schema {
	return &Schema{
		Delimiter:  DefaultDelimiter,
		BufferSize: DefaultBufferSize,
		Fields:     []FieldConfig{},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the schema.
func (s *Schema) applyEnvironmentOverrides() error {
	if d := os.Getenv(EnvDelimiter); d != "" {
		s.Delimiter = d
	}

	if v := os.Getenv(EnvBufferSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBufferSize, err)
		}
		s.BufferSize = n
	}

	return nil
}

// ParseDelimiter decodes a delimiter given as a single byte, a
// backslash escape such as `\t`, or one of the readable names.
func ParseDelimiter(s string) (byte, error) {
	if b, ok := delimiterNames[s]; ok {
		return b, nil
	}
	switch s {
	case `\t`:
		return '\t', nil
	case `\n`:
		return '\n', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single byte or a known name", s)
	}
	return s[0], nil
}

// DelimiterName returns the readable name of b, or b itself when it has none.
func DelimiterName(b byte) string {
	for name, d := range delimiterNames {
		if d == b {
			return name
		}
	}
	return string([]byte{b})
}
