package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/linr/pkg/detector"
	"github.com/ccollicutt/linr/pkg/schema"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output        string
	SampleSize    int
	Delim         string
	MinConfidence float64
	EmitSchema    string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Infer a line schema from sample input",
		Long: `Sample lines from a file (or stdin) and infer the layout of each line.

The most common field count becomes the schema's arity. Each column takes the
narrowest type every sampled value parses as, in this order:
  - int64
  - float64
  - duration
  - time (RFC 3339, ISO 8601, date, time of day, CLF, US date)
  - bool (true/false words)
  - char (single byte)
  - string

Optionally writes a ready-to-use schema with --emit-schema (use - for stdout).

Example:
  linr detect data.txt
  linr detect --delim comma --sample 500 data.csv
  linr detect --emit-schema data.yaml data.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().StringVarP(&opts.Delim, "delim", "d", schema.DefaultDelimiter, "Field delimiter")
	cmd.Flags().Float64Var(&opts.MinConfidence, "min-confidence", detector.DefaultMinConfidence, "Share of values a type must match (0-1]")
	cmd.Flags().StringVarP(&opts.EmitSchema, "emit-schema", "w", "", "Write the detected schema to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	delim, err := schema.ParseDelimiter(opts.Delim)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithDelimiter(delim),
		detector.WithMinConfidence(opts.MinConfidence),
	)

	source := "stdin"
	var result *detector.DetectionResult
	if len(args) == 1 && args[0] != "-" {
		source = args[0]
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", source)
		}
		result, err = d.DetectFromFile(ctx, source)
	} else {
		result, err = d.DetectFromReader(ctx, cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if opts.EmitSchema != "" {
		if err := writeSchema(result, opts.EmitSchema, out); err != nil {
			return err
		}
		if opts.EmitSchema == "-" {
			return nil
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(result, source, out)
	case "text":
		return outputDetectText(result, source, out)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(result *detector.DetectionResult, source string, w io.Writer) error {
	fmt.Fprintln(w, "=== Line Layout Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)

	if !result.HasColumns() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No lines to analyze.")
		return nil
	}

	fmt.Fprintf(w, "Fields per line: %d (%d/%d lines)\n", result.FieldCount, result.ConsistentLines, result.SampledLines)
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Detected As", "Layout", "Confidence", "Sample"})
	for _, c := range result.Columns {
		name, layout := "String", ""
		if c.Candidate != nil {
			name, layout = c.Candidate.Name, c.Candidate.Layout
		}
		t.AppendRow(table.Row{c.Index + 1, c.Type(), name, layout, fmt.Sprintf("%.1f%%", c.Confidence*100), c.Sample})
	}
	t.Render()
	fmt.Fprintln(w)

	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Read with ---")
	fmt.Fprintln(w)
	delim := schema.DelimiterName(result.Delimiter)
	if needsSchema(result) {
		// --types cannot carry a time layout.
		input := source
		if source == "stdin" {
			input = "FILE"
		}
		fmt.Fprintf(w, "  linr detect --delim %s --emit-schema schema.yaml %s\n", delim, input)
		fmt.Fprintf(w, "  linr read --schema schema.yaml --input %s\n", input)
		return nil
	}

	types := make([]string, len(result.Columns))
	for i, ft := range result.Types() {
		types[i] = string(ft)
	}
	fmt.Fprintf(w, "  linr read --delim %s --types %s\n", delim, strings.Join(types, ","))

	return nil
}

// needsSchema reports whether a column uses a time layout other than the
// default, which only a schema file can express.
func needsSchema(result *detector.DetectionResult) bool {
	for _, c := range result.Columns {
		if c.Candidate != nil && c.Candidate.Type == schema.TypeTime && c.Candidate.Layout != schema.DefaultTimeLayout {
			return true
		}
	}
	return false
}

// JSONColumn represents a detected column in JSON output.
type JSONColumn struct {
	Index      int     `json:"index"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Layout     string  `json:"layout,omitempty"`
	Confidence float64 `json:"confidence"`
	Sample     string  `json:"sample"`
	Ambiguous  bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	Source          string       `json:"source"`
	Delimiter       string       `json:"delimiter"`
	FieldCount      int          `json:"field_count"`
	SampledLines    int          `json:"sampled_lines"`
	ConsistentLines int          `json:"consistent_lines"`
	Columns         []JSONColumn `json:"columns"`
	AmbiguityNote   string       `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(result *detector.DetectionResult, source string, w io.Writer) error {
	output := JSONOutput{
		Source:          source,
		Delimiter:       schema.DelimiterName(result.Delimiter),
		FieldCount:      result.FieldCount,
		SampledLines:    result.SampledLines,
		ConsistentLines: result.ConsistentLines,
		AmbiguityNote:   result.AmbiguityNote,
		Columns:         make([]JSONColumn, 0, len(result.Columns)),
	}

	for _, c := range result.Columns {
		col := JSONColumn{
			Index:      c.Index,
			Type:       string(c.Type()),
			Name:       "String",
			Confidence: c.Confidence,
			Sample:     c.Sample,
		}
		if c.Candidate != nil {
			col.Name = c.Candidate.Name
			col.Layout = c.Candidate.Layout
			col.Ambiguous = c.Candidate.Ambiguous
		}
		output.Columns = append(output.Columns, col)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// writeSchema writes the detected schema as YAML to path, or to w when
// path is "-".
func writeSchema(result *detector.DetectionResult, path string, w io.Writer) error {
	s, err := result.Schema()
	if err != nil {
		return fmt.Errorf("cannot generate schema: %w", err)
	}

	data, err := schema.Marshal(s)
	if err != nil {
		return err
	}

	if path == "-" {
		_, err := w.Write(data)
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("schema file already exists: %s (will not overwrite)", path)
	}

	// #nosec G306 - schema file doesn't need restrictive permissions
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	fmt.Fprintf(w, "Wrote schema to: %s\n\n", path)
	return nil
}
