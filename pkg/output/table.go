package output

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter collects records and renders them as one table with the
// summary. Failures are listed below the table.
type TableFormatter struct {
	opts     FormatOptions
	header   []string
	rows     []table.Row
	failures []*Failure
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders the report as a table.
func (f *TableFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	return formatAll(ctx, f, report, w)
}

// FormatRecord buffers a row; nothing is written until the summary.
func (f *TableFormatter) FormatRecord(_ context.Context, rec *Record, _ io.Writer) error {
	if f.header == nil {
		f.header = make([]string, len(rec.Values))
		for i, v := range rec.Values {
			f.header[i] = v.Name
		}
	}

	row := make(table.Row, 0, len(rec.Values)+1)
	row = append(row, rec.Line)
	for _, v := range rec.Values {
		row = append(row, v.Value)
	}
	f.rows = append(f.rows, row)
	return nil
}

// FormatFailure buffers a failure for the listing below the table.
func (f *TableFormatter) FormatFailure(_ context.Context, fail *Failure, _ io.Writer) error {
	f.failures = append(f.failures, fail)
	return nil
}

// FormatSummary renders the buffered rows and failures, then the summary.
func (f *TableFormatter) FormatSummary(ctx context.Context, report *Report, w io.Writer) error {
	if !f.opts.Quiet && len(f.rows) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)

		header := make(table.Row, 0, len(f.header)+1)
		header = append(header, "#")
		for _, h := range f.header {
			header = append(header, h)
		}
		t.AppendHeader(header)
		t.AppendRows(f.rows)
		t.Render()
	}

	if !f.opts.Quiet && len(f.failures) > 0 {
		text := NewTextFormatter(f.opts)
		fmt.Fprintln(w)
		for _, fail := range f.failures {
			if err := text.FormatFailure(ctx, fail, w); err != nil {
				return err
			}
		}
	}

	f.rows, f.failures = nil, nil
	return NewTextFormatter(f.opts).FormatSummary(ctx, report, w)
}
