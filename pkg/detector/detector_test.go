package detector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/schema"
)

func typesOf(r *DetectionResult) string {
	var parts []string
	for _, t := range r.Types() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

func TestDetector_DetectFromLines_Mixed(t *testing.T) {
	lines := []string{
		"1 0.5 alice",
		"2 1.25 bob",
		"3 7 carol",
	}

	result := New().DetectFromLines(lines)

	if result.FieldCount != 3 {
		t.Fatalf("FieldCount = %d, want 3", result.FieldCount)
	}
	if got := typesOf(result); got != "int64,float64,string" {
		t.Errorf("Types() = %s, want int64,float64,string", got)
	}
	if result.Columns[0].Sample != "1" {
		t.Errorf("Sample = %q, want 1", result.Columns[0].Sample)
	}
	if result.Columns[2].Candidate != nil {
		t.Errorf("string column should have no candidate, got %s", result.Columns[2].Candidate.Name)
	}
}

func TestDetector_DetectFromLines_PreferenceOrder(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   schema.FieldType
	}{
		{"zero and one stay integers", []string{"0", "1", "1"}, schema.TypeInt64},
		{"bool words", []string{"true", "FALSE", "True"}, schema.TypeBool},
		{"durations", []string{"1s", "250ms", "1h2m"}, schema.TypeDuration},
		{"dates", []string{"2024-01-15", "2023-12-31"}, schema.TypeTime},
		{"characters", []string{"y", "n", "y"}, schema.TypeChar},
		{"mixed words", []string{"true", "maybe"}, schema.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().DetectFromLines(tt.values)
			if got := result.Columns[0].Type(); got != tt.want {
				t.Errorf("Type() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetector_DetectFromLines_TimeLayouts(t *testing.T) {
	tests := []struct {
		value  string
		layout string
	}{
		{"2024-01-15T10:30:00Z", schema.DefaultTimeLayout},
		{"2024-01-15T10:30:00.123+02:00", schema.DefaultTimeLayout},
		{"2024-01-15T10:30:00", "2006-01-02T15:04:05"},
		{"10:30:00", "15:04:05"},
		{"15/Jan/2024:10:30:00", "02/Jan/2006:15:04:05"},
	}

	for _, tt := range tests {
		result := New().DetectFromLines([]string{tt.value})
		c := result.Columns[0].Candidate
		if c == nil || c.Layout != tt.layout {
			t.Errorf("%q: candidate = %+v, want layout %q", tt.value, c, tt.layout)
		}
	}
}

func TestDetector_DetectFromLines_MinConfidence(t *testing.T) {
	lines := []string{"10", "20", "30", "40", "x"}

	strict := New().DetectFromLines(lines)
	if got := strict.Columns[0].Type(); got != schema.TypeString {
		t.Errorf("strict Type() = %s, want string", got)
	}

	lenient := New(WithMinConfidence(0.8)).DetectFromLines(lines)
	col := lenient.Columns[0]
	if col.Type() != schema.TypeInt64 {
		t.Errorf("lenient Type() = %s, want int64", col.Type())
	}
	if col.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", col.Confidence)
	}
}

func TestDetector_DetectFromLines_RaggedLines(t *testing.T) {
	lines := []string{
		"1,2",
		"3,4",
		"5,6,7",
		"8,9",
	}

	result := New(WithDelimiter(',')).DetectFromLines(lines)

	if result.FieldCount != 2 || result.ConsistentLines != 3 {
		t.Errorf("FieldCount = %d, ConsistentLines = %d, want 2 and 3", result.FieldCount, result.ConsistentLines)
	}
	if result.SampledLines != 4 {
		t.Errorf("SampledLines = %d, want 4", result.SampledLines)
	}
}

func TestDetector_DetectFromLines_SkipsComments(t *testing.T) {
	lines := []string{
		"# id ratio",
		"",
		"1 2.5",
		"   ",
		"2 3.5",
	}

	result := New().DetectFromLines(lines)

	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
	if got := typesOf(result); got != "int64,float64" {
		t.Errorf("Types() = %s", got)
	}
}

func TestDetector_DetectFromLines_EmptyInput(t *testing.T) {
	result := New().DetectFromLines(nil)

	if result.HasColumns() {
		t.Error("Expected no columns for empty input")
	}
	if _, err := result.Schema(); err == nil {
		t.Error("Schema() expected error without columns")
	}
}

func TestDetector_DetectFromLines_AmbiguousFormat(t *testing.T) {
	result := New().DetectFromLines([]string{"x 01/02/2024", "y 03/04/2024"})

	if result.Columns[1].Candidate == nil || !result.Columns[1].Candidate.Ambiguous {
		t.Fatalf("column 2 = %+v, want ambiguous date", result.Columns[1])
	}
	if !strings.Contains(result.AmbiguityNote, "Column 2") {
		t.Errorf("AmbiguityNote = %q", result.AmbiguityNote)
	}
}

func TestDetector_UsesRegistry(t *testing.T) {
	reg := linr.NewRegistry()
	linr.Register(reg, func(field []byte) (int64, error) {
		if string(field) == "many" {
			return 1000, nil
		}
		return 0, linr.InvalidInput
	})

	result := New(WithRegistry(reg)).DetectFromLines([]string{"many", "many"})
	if got := result.Columns[0].Type(); got != schema.TypeInt64 {
		t.Errorf("Type() = %s, want int64 via override", got)
	}
}

func TestDetectionResult_Schema(t *testing.T) {
	lines := []string{
		"1;2024-01-15;2024-01-15T10:30:00Z;ok",
		"2;2024-02-01;2024-02-01T00:00:00Z;fine",
	}

	result := New(WithDelimiter(';')).DetectFromLines(lines)
	s, err := result.Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	if s.Delimiter != "semicolon" || s.Delim() != ';' {
		t.Errorf("Delimiter = %q (%q)", s.Delimiter, s.Delim())
	}
	want := []string{"int64", "time", "string", "string"}
	for i, f := range s.Fields {
		if f.Type != want[i] {
			t.Errorf("Fields[%d].Type = %s, want %s", i, f.Type, want[i])
		}
	}
	if s.TimeLayout() != "2006-01-02" {
		t.Errorf("TimeLayout() = %q", s.TimeLayout())
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	d := New(WithSampleSize(50))
	if d.sampleSize != 50 {
		t.Errorf("Expected sample size 50, got %d", d.sampleSize)
	}
}

func TestDetector_WithSampleSize_Invalid(t *testing.T) {
	d := New(WithSampleSize(-1))
	if d.sampleSize != DefaultSampleSize {
		t.Errorf("Expected default sample size %d, got %d", DefaultSampleSize, d.sampleSize)
	}
}

func TestDetector_DetectFromReader_RespectsSampleSize(t *testing.T) {
	input := "1\n2\n3\nnot-a-number\n"

	result, err := New(WithSampleSize(3)).DetectFromReader(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("DetectFromReader failed: %v", err)
	}
	if result.SampledLines != 3 {
		t.Errorf("SampledLines = %d, want 3", result.SampledLines)
	}
	if got := result.Columns[0].Type(); got != schema.TypeInt64 {
		t.Errorf("Type() = %s, want int64", got)
	}
}

func TestDetector_DetectFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "sample.txt")

	content := "alpha\t1\r\nbeta\t2\r\ngamma\t3\r\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result, err := New(WithDelimiter('\t')).DetectFromFile(context.Background(), tmpFile)
	if err != nil {
		t.Fatalf("DetectFromFile failed: %v", err)
	}
	if got := typesOf(result); got != "string,int64" {
		t.Errorf("Types() = %s, want string,int64", got)
	}
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestDetector_DetectFromReader_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().DetectFromReader(ctx, strings.NewReader("1\n"))
	if err == nil {
		t.Error("Expected error for canceled context")
	}
}

func TestDefaultCandidates(t *testing.T) {
	for _, c := range DefaultCandidates() {
		if c.Name == "" {
			t.Error("candidate without name")
		}
		for _, ex := range c.Examples {
			if !c.Match(linr.DefaultRegistry, []byte(ex)) {
				t.Errorf("%s does not match its own example %q", c.Name, ex)
			}
		}
	}
}
