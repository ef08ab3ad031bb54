// Package output provides formatting of parsed records and read summaries.
package output

import (
	"errors"
	"time"

	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/schema"
)

// Record is one successfully parsed line.
type Record struct {
	// Line is the 1-based line number in the input.
	Line int

	Values []schema.Value
}

// Failure describes a line that could not be parsed.
type Failure struct {
	// Line is the 1-based line number in the input.
	Line int

	// Field is the 1-based failing field, or 0 when the line as a whole
	// was rejected (wrong field count, stream error).
	Field int

	// FieldName is the schema name of the failing field, if known.
	FieldName string

	Code linr.Error
}

// NewFailure builds a Failure for line from a read error. Names resolve
// field indexes to schema names.
func NewFailure(line int, err error, names []string) *Failure {
	f := &Failure{Line: line, Code: linr.Unknown}

	if code, ok := linr.CodeOf(err); ok {
		f.Code = code
	}

	var fe *linr.FieldError
	if errors.As(err, &fe) {
		f.Field = fe.Index + 1
		if fe.Index < len(names) {
			f.FieldName = names[fe.Index]
		}
	}

	return f
}

// Report is the complete output of a read session. Streaming readers only
// count lines in Summary and leave Records and Failures empty.
type Report struct {
	Records  []*Record
	Failures []*Failure
	Summary  Summary
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesRead counts every line acquired from the input.
	LinesRead int

	// LinesParsed counts lines that produced a record.
	LinesParsed int

	// LinesFailed counts lines that were rejected.
	LinesFailed int

	// Stopped is set when reading ended before the end of input.
	Stopped bool
}

// Metadata provides context about the read session.
type Metadata struct {
	// Source is the input name ("stdin" or a file path).
	Source string

	// Fields lists the schema field names.
	Fields []string

	// StartedAt is when reading began.
	StartedAt time.Time

	// Duration is how long reading took.
	Duration time.Duration
}

// Add keeps a parsed line and updates the summary.
func (r *Report) Add(rec *Record) {
	r.Records = append(r.Records, rec)
	r.CountRecord()
}

// Fail keeps a rejected line and updates the summary.
func (r *Report) Fail(f *Failure) {
	r.Failures = append(r.Failures, f)
	r.CountFailure(f)
}

// CountRecord updates the summary for a parsed line without keeping it.
func (r *Report) CountRecord() {
	r.Summary.LinesRead++
	r.Summary.LinesParsed++
}

// CountFailure updates the summary for a rejected line without keeping it.
// Stream errors are not counted as lines read.
func (r *Report) CountFailure(f *Failure) {
	if !f.Code.IsStream() {
		r.Summary.LinesRead++
	}
	r.Summary.LinesFailed++
}

// HasFailures reports whether any line was rejected.
func (r *Report) HasFailures() bool {
	return r.Summary.LinesFailed > 0
}
