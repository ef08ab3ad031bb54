// Package split divides a line into a fixed number of delimiter-separated fields.
//
// Fields are maximal runs of bytes that are neither the delimiter nor a line
// terminator ('\n' or NUL). Runs of delimiters, leading or trailing, never
// produce empty fields. A terminator ends scanning even in the middle of a
// field. A delimiter of '\n' or NUL is treated as a delimiter, not a
// terminator.
package split

// isTerminator reports whether c ends the scannable part of a line.
func isTerminator(c byte) bool {
	return c == '\n' || c == 0
}

// Fields splits line into exactly n fields separated by delim.
//
// The returned slices alias line. When the line does not hold exactly n
// fields the call fails and returns nil, false. n must be at least 1; whole
// line reads do not go through Fields.
func Fields(line []byte, delim byte, n int) ([][]byte, bool) {
	return fields(line, delim, n)
}

// FieldsString is Fields for string input.
func FieldsString(s string, delim byte, n int) ([]string, bool) {
	return fields(s, delim, n)
}

func fields[S ~string | ~[]byte](line S, delim byte, n int) ([]S, bool) {
	// Every field but the last needs a delimiter after it, so a line of
	// length l holds at most l/2+1 fields.
	if n <= 0 || n > len(line)/2+1 {
		return nil, false
	}

	out := make([]S, 0, n)
	i := 0
	for i < len(line) {
		// Skip the delimiter run in front of the next field.
		for i < len(line) && line[i] == delim {
			i++
		}
		if i == len(line) || isTerminator(line[i]) {
			break
		}

		start := i
		for i < len(line) && line[i] != delim && !isTerminator(line[i]) {
			i++
		}
		if len(out) == n {
			// One field too many.
			return nil, false
		}
		out = append(out, line[start:i])

		if i < len(line) && isTerminator(line[i]) {
			break
		}
	}

	if len(out) != n {
		return nil, false
	}
	return out, true
}

// Count returns the number of fields Fields would find in line.
func Count(line []byte, delim byte) int {
	count := 0
	inField := false
	for _, c := range line {
		if c == delim {
			inField = false
			continue
		}
		if isTerminator(c) {
			break
		}
		if !inField {
			inField = true
			count++
		}
	}
	return count
}
