// Package detector infers a line schema from sample input: the number of
// fields per line and the narrowest type that fits each column.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ccollicutt/linr/pkg/linesource"
	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/schema"
	"github.com/ccollicutt/linr/pkg/split"
)

// Default detection settings.
const (
	DefaultSampleSize    = 100
	DefaultMinConfidence = 1.0
)

// DetectionResult holds the result of analyzing sample lines.
type DetectionResult struct {
	Columns         []ColumnMatch // Detected type per column, in field order
	Delimiter       byte          // Delimiter the lines were split on
	FieldCount      int           // Most common number of fields per line
	SampledLines    int           // Number of lines sampled
	ConsistentLines int           // Lines with FieldCount fields
	AmbiguityNote   string        // Warning about date ordering if applicable
}

// ColumnMatch is the type chosen for one column.
type ColumnMatch struct {
	Index      int        // Zero-based column index
	Candidate  *Candidate // Chosen candidate; nil means string
	Confidence float64    // 0.0 to 1.0 (share of consistent lines that matched)
	Sample     string     // Example value from the column
}

// Type returns the schema type of the column.
func (c ColumnMatch) Type() schema.FieldType {
	if c.Candidate == nil {
		return schema.TypeString
	}
	return c.Candidate.Type
}

// Detector samples lines and infers column types.
type Detector struct {
	candidates    []*Candidate
	sampleSize    int
	minConfidence float64
	delim         byte
	reg           *linr.Registry
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithMinConfidence sets the share of values a candidate must match for a
// column to take its type (default 1.0).
func WithMinConfidence(c float64) Option {
	return func(d *Detector) {
		if c > 0 && c <= 1 {
			d.minConfidence = c
		}
	}
}

// WithDelimiter sets the field delimiter (default space).
func WithDelimiter(b byte) Option {
	return func(d *Detector) {
		d.delim = b
	}
}

// WithRegistry sets the registry candidates parse through.
func WithRegistry(reg *linr.Registry) Option {
	return func(d *Detector) {
		if reg != nil {
			d.reg = reg
		}
	}
}

// New creates a new Detector with default candidates.
func New(opts ...Option) *Detector {
	d := &Detector{
		candidates:    DefaultCandidates(),
		sampleSize:    DefaultSampleSize,
		minConfidence: DefaultMinConfidence,
		delim:         linr.DefaultDelim,
		reg:           linr.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes the head of a file.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return d.DetectFromReader(ctx, file)
}

// DetectFromReader samples up to the configured number of lines from r.
func (d *Detector) DetectFromReader(ctx context.Context, r io.Reader) (*DetectionResult, error) {
	lines, err := d.sample(ctx, r)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of lines. Empty lines and lines
// starting with '#' are skipped.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{Delimiter: d.delim}

	var rows []string
	counts := make(map[int]int)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, line)
		counts[split.Count([]byte(line), d.delim)]++
	}
	result.SampledLines = len(rows)

	if len(rows) == 0 {
		return result
	}

	// Most common field count; ties go to the wider layout.
	for n, c := range counts {
		if c > result.ConsistentLines || (c == result.ConsistentLines && n > result.FieldCount) {
			result.FieldCount, result.ConsistentLines = n, c
		}
	}

	type columnStats struct {
		matches []int
		sample  string
	}
	stats := make([]columnStats, result.FieldCount)
	for i := range stats {
		stats[i].matches = make([]int, len(d.candidates))
	}

	for _, line := range rows {
		fields, ok := split.Fields([]byte(line), d.delim, result.FieldCount)
		if !ok {
			continue
		}
		for col, field := range fields {
			if stats[col].sample == "" {
				stats[col].sample = string(field)
			}
			for ci, c := range d.candidates {
				if c.Match(d.reg, field) {
					stats[col].matches[ci]++
				}
			}
		}
	}

	total := float64(result.ConsistentLines)
	for col, s := range stats {
		m := ColumnMatch{Index: col, Confidence: 1, Sample: s.sample}
		for ci, c := range d.candidates {
			conf := float64(s.matches[ci]) / total
			if conf >= d.minConfidence {
				m.Candidate, m.Confidence = c, conf
				break
			}
		}
		result.Columns = append(result.Columns, m)

		if m.Candidate != nil && m.Candidate.Ambiguous && result.AmbiguityNote == "" {
			result.AmbiguityNote = fmt.Sprintf("Column %d uses a date layout with ordering ambiguity (MM/DD vs DD/MM). "+
				"For European format (DD/MM/YYYY), use layout: \"02/01/2006\"", col+1)
		}
	}

	return result
}

// sample reads up to sampleSize lines through a buffered line source.
func (d *Detector) sample(ctx context.Context, r io.Reader) ([]string, error) {
	src, err := linesource.NewBufReader(r, 0)
	if err != nil {
		return nil, err
	}

	var lines []string
	for len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line.String())
	}

	return lines, nil
}

// HasColumns returns true if at least one column was detected.
func (r *DetectionResult) HasColumns() bool {
	return len(r.Columns) > 0
}

// Types returns the detected type of every column.
func (r *DetectionResult) Types() []schema.FieldType {
	types := make([]schema.FieldType, len(r.Columns))
	for i, c := range r.Columns {
		types[i] = c.Type()
	}
	return types
}

// Schema builds a validated schema describing the detected layout.
func (r *DetectionResult) Schema() (*schema.Schema, error) {
	if !r.HasColumns() {
		return nil, errors.New("no columns detected")
	}

	s := schema.DefaultSchema()
	s.Delimiter = schema.DelimiterName(r.Delimiter)

	var layout string
	for _, c := range r.Columns {
		f := schema.FieldConfig{Type: string(c.Type())}
		if c.Candidate != nil && c.Candidate.Type == schema.TypeTime {
			// One time layout per schema; later columns with another
			// layout fall back to string.
			if layout != "" && layout != c.Candidate.Layout {
				f.Type = string(schema.TypeString)
			} else {
				layout = c.Candidate.Layout
				f.Layout = layout
			}
		}
		s.Fields = append(s.Fields, f)
	}

	if err := schema.Validate(s); err != nil {
		return nil, fmt.Errorf("validating detected schema: %w", err)
	}
	return s, nil
}
