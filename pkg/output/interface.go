package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders read results in a specific format. Records and
// failures can be written one at a time as they are read; Format writes
// a whole report.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// FormatRecord renders a single parsed line.
	FormatRecord(ctx context.Context, rec *Record, w io.Writer) error

	// FormatFailure renders a single rejected line.
	FormatFailure(ctx context.Context, f *Failure, w io.Writer) error

	// FormatSummary renders the closing summary.
	FormatSummary(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, table).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds metadata such as the source and duration.
	Verbose bool

	// Quiet suppresses records and prints only the summary.
	Quiet bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "table":
		return NewTableFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be text, json or table)", name)
	}
}

// formatAll writes every record and failure in line order, then the summary.
func formatAll(ctx context.Context, f Formatter, report *Report, w io.Writer) error {
	ri, fi := 0, 0
	for ri < len(report.Records) || fi < len(report.Failures) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fi >= len(report.Failures) || (ri < len(report.Records) && report.Records[ri].Line < report.Failures[fi].Line) {
			if err := f.FormatRecord(ctx, report.Records[ri], w); err != nil {
				return err
			}
			ri++
			continue
		}
		if err := f.FormatFailure(ctx, report.Failures[fi], w); err != nil {
			return err
		}
		fi++
	}
	return f.FormatSummary(ctx, report, w)
}
