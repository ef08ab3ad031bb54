package output

import (
	"context"
	"io"

	"github.com/goccy/go-json"
)

// JSONFormatter formats results as newline-delimited JSON: one object per
// record or failure, followed by a summary object.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonRecord struct {
	Line   int            `json:"line"`
	Values map[string]any `json:"values"`
}

type jsonFailure struct {
	Line      int    `json:"line"`
	Error     string `json:"error"`
	Code      uint8  `json:"code"`
	Field     int    `json:"field,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

type jsonSummary struct {
	LinesRead   int      `json:"lines_read"`
	LinesParsed int      `json:"lines_parsed"`
	LinesFailed int      `json:"lines_failed"`
	Stopped     bool     `json:"stopped,omitempty"`
	Source      string   `json:"source,omitempty"`
	Fields      []string `json:"fields,omitempty"`
	DurationMS  int64    `json:"duration_ms,omitempty"`
}

type jsonSummaryLine struct {
	Summary jsonSummary `json:"summary"`
}

// Format renders the report as JSON lines.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	return formatAll(ctx, f, report, w)
}

// FormatRecord writes one record object.
func (f *JSONFormatter) FormatRecord(_ context.Context, rec *Record, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	values := make(map[string]any, len(rec.Values))
	for _, v := range rec.Values {
		values[v.Name] = v.Value
	}
	return json.NewEncoder(w).Encode(jsonRecord{Line: rec.Line, Values: values})
}

// FormatFailure writes one failure object.
func (f *JSONFormatter) FormatFailure(_ context.Context, fail *Failure, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	return json.NewEncoder(w).Encode(jsonFailure{
		Line:      fail.Line,
		Error:     fail.Code.String(),
		Code:      uint8(fail.Code),
		Field:     fail.Field,
		FieldName: fail.FieldName,
	})
}

// FormatSummary writes the summary object.
func (f *JSONFormatter) FormatSummary(_ context.Context, report *Report, w io.Writer) error {
	s := jsonSummary{
		LinesRead:   report.Summary.LinesRead,
		LinesParsed: report.Summary.LinesParsed,
		LinesFailed: report.Summary.LinesFailed,
		Stopped:     report.Summary.Stopped,
	}
	if f.opts.Verbose {
		s.Source = report.Metadata.Source
		s.Fields = report.Metadata.Fields
		s.DurationMS = report.Metadata.Duration.Milliseconds()
	}
	return json.NewEncoder(w).Encode(jsonSummaryLine{Summary: s})
}
