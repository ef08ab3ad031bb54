package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	return formatAll(ctx, f, report, w)
}

// FormatRecord writes one line of name=value pairs.
func (f *TextFormatter) FormatRecord(_ context.Context, rec *Record, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d:", rec.Line)
	for _, v := range rec.Values {
		fmt.Fprintf(&b, " %s=%s", v.Name, formatValue(v.Value))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatFailure writes one line describing the rejected input line.
func (f *TextFormatter) FormatFailure(_ context.Context, fail *Failure, w io.Writer) error {
	if f.opts.Quiet {
		return nil
	}

	var err error
	switch {
	case fail.Field > 0 && fail.FieldName != "":
		_, err = fmt.Fprintf(w, "%d: error: field %d (%s): %s\n", fail.Line, fail.Field, fail.FieldName, fail.Code.String())
	case fail.Field > 0:
		_, err = fmt.Fprintf(w, "%d: error: field %d: %s\n", fail.Line, fail.Field, fail.Code.String())
	default:
		_, err = fmt.Fprintf(w, "%d: error: %s\n", fail.Line, fail.Code.String())
	}
	return err
}

// FormatSummary writes the closing summary.
func (f *TextFormatter) FormatSummary(_ context.Context, report *Report, w io.Writer) error {
	s := report.Summary
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "linr: %d lines read, %d parsed, %d failed\n", s.LinesRead, s.LinesParsed, s.LinesFailed)
		return err
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d lines read, %d parsed, %d failed\n", s.LinesRead, s.LinesParsed, s.LinesFailed)
	if s.Stopped {
		fmt.Fprintln(w, "Reading stopped before the end of input")
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
		if len(report.Metadata.Fields) > 0 {
			fmt.Fprintf(w, "Fields: %s\n", strings.Join(report.Metadata.Fields, ", "))
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

// formatValue quotes strings that would be ambiguous in name=value form.
func formatValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}
