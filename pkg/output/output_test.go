package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/schema"
)

func createTestReport() *Report {
	r := &Report{
		Metadata: Metadata{
			Source:    "stdin",
			Fields:    []string{"name", "age"},
			StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Duration:  1500 * time.Millisecond,
		},
	}
	r.Add(&Record{Line: 1, Values: []schema.Value{
		{Name: "name", Type: schema.TypeString, Value: "ada lovelace"},
		{Name: "age", Type: schema.TypeInt, Value: 36},
	}})
	r.Fail(NewFailure(2, &linr.FieldError{Index: 1, Code: linr.OutOfRange}, []string{"name", "age"}))
	r.Add(&Record{Line: 3, Values: []schema.Value{
		{Name: "name", Type: schema.TypeString, Value: "bob"},
		{Name: "age", Type: schema.TypeInt, Value: 7},
	}})
	return r
}

func TestNew(t *testing.T) {
	for _, name := range []string{"text", "json", "table"} {
		f, err := New(name, FormatOptions{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("Name() = %q, want %q", f.Name(), name)
		}
	}

	if _, err := New("xml", FormatOptions{}); err == nil {
		t.Error("New(xml) expected error")
	}
}

func TestNewFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  linr.Error
		wantField int
		wantName  string
	}{
		{"field error", &linr.FieldError{Index: 0, Code: linr.InvalidInput}, linr.InvalidInput, 1, "a"},
		{"field beyond names", &linr.FieldError{Index: 4, Code: linr.OutOfRange}, linr.OutOfRange, 5, ""},
		{"bare code", linr.InvalidInput, linr.InvalidInput, 0, ""},
		{"foreign error", errors.New("boom"), linr.Unknown, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFailure(9, tt.err, []string{"a"})
			if f.Line != 9 || f.Code != tt.wantCode || f.Field != tt.wantField || f.FieldName != tt.wantName {
				t.Errorf("NewFailure() = %+v", f)
			}
		})
	}
}

func TestReport_Counts(t *testing.T) {
	r := createTestReport()
	r.Fail(NewFailure(4, linr.Unknown, nil))

	if r.Summary.LinesRead != 3 {
		t.Errorf("LinesRead = %d, want 3 (stream errors are not lines)", r.Summary.LinesRead)
	}
	if r.Summary.LinesParsed != 2 || r.Summary.LinesFailed != 2 {
		t.Errorf("Summary = %+v", r.Summary)
	}
	if !r.HasFailures() {
		t.Error("HasFailures() = false")
	}
}

func TestReport_CountingKeepsNothing(t *testing.T) {
	r := &Report{}
	for i := 0; i < 1000; i++ {
		r.CountRecord()
	}
	r.CountFailure(NewFailure(1001, linr.InvalidInput, nil))

	if len(r.Records) != 0 || len(r.Failures) != 0 {
		t.Errorf("Records = %d, Failures = %d, want none kept", len(r.Records), len(r.Failures))
	}
	if r.Summary.LinesRead != 1001 || r.Summary.LinesParsed != 1000 || r.Summary.LinesFailed != 1 {
		t.Errorf("Summary = %+v", r.Summary)
	}
	if !r.HasFailures() {
		t.Error("HasFailures() = false after CountFailure")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `1: name="ada lovelace" age=36
2: error: field 2 (age): parsed value can't be contained within given type
3: name=bob age=7
---
Summary: 3 lines read, 2 parsed, 1 failed
`
	if buf.String() != want {
		t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()
	report.Summary.Stopped = true

	var buf bytes.Buffer
	if err := f.FormatSummary(context.Background(), report, &buf); err != nil {
		t.Fatalf("FormatSummary() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Source: stdin", "Fields: name, age", "Duration: 1.5s", "stopped"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "linr: 3 lines read, 2 parsed, 1 failed\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_FailureWithoutField(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.FormatFailure(context.Background(), NewFailure(5, linr.InvalidInput, nil), &buf); err != nil {
		t.Fatalf("FormatFailure() error = %v", err)
	}
	if got := buf.String(); got != "5: error: invalid input (failed to parse input)\n" {
		t.Errorf("FormatFailure() = %q", got)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}

	var rec jsonRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not valid JSON: %v", err)
	}
	if rec.Line != 1 || rec.Values["name"] != "ada lovelace" || rec.Values["age"] != float64(36) {
		t.Errorf("record = %+v", rec)
	}

	var fail jsonFailure
	if err := json.Unmarshal([]byte(lines[1]), &fail); err != nil {
		t.Fatalf("failure is not valid JSON: %v", err)
	}
	if fail.Line != 2 || fail.Code != uint8(linr.OutOfRange) || fail.Field != 2 || fail.FieldName != "age" {
		t.Errorf("failure = %+v", fail)
	}

	var sum jsonSummaryLine
	if err := json.Unmarshal([]byte(lines[3]), &sum); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if sum.Summary.LinesRead != 3 || sum.Summary.LinesFailed != 1 {
		t.Errorf("summary = %+v", sum.Summary)
	}
	if sum.Summary.Source != "" {
		t.Error("metadata must only be included in verbose mode")
	}
}

func TestJSONFormatter_QuietVerbose(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true, Verbose: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var sum jsonSummaryLine
	if err := json.Unmarshal(buf.Bytes(), &sum); err != nil {
		t.Fatalf("Output is not a single JSON object: %v\n%s", err, buf.String())
	}
	if sum.Summary.Source != "stdin" || sum.Summary.DurationMS != 1500 {
		t.Errorf("summary = %+v", sum.Summary)
	}
}

func TestFormat_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewTextFormatter(FormatOptions{}).Format(ctx, createTestReport(), &buf)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Format() error = %v, want context.Canceled", err)
	}
}

func TestTableFormatter_Format(t *testing.T) {
	f := NewTableFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"#", "NAME", "AGE", "ada lovelace", "bob", "2: error: field 2 (age)", "Summary: 3 lines read, 2 parsed, 1 failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Index(output, "bob") > strings.Index(output, "2: error") {
		t.Errorf("failures must follow the table:\n%s", output)
	}
}

func TestTableFormatter_Quiet(t *testing.T) {
	f := NewTableFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "linr: 3 lines read, 2 parsed, 1 failed\n" {
		t.Errorf("Format() = %q", buf.String())
	}
}
