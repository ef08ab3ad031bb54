package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccollicutt/linr/pkg/linr"
	"github.com/ccollicutt/linr/pkg/output"
	"github.com/ccollicutt/linr/pkg/schema"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReadOptions holds command-line options for the read command.
type ReadOptions struct {
	Schema       string
	Types        string
	WholeLine    bool
	Delim        string
	Prompt       string
	PromptAlways bool
	BufferSize   int
	Ephemeral    bool
	Input        string
	Output       string
	KeepGoing    bool
	MaxLines     int
	Verbose      bool
	Quiet        bool
}

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	opts := &ReadOptions{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read and parse typed lines",
		Long: `Read lines from stdin (or --input) and parse each one into typed fields.

The line layout comes from a YAML schema (--schema), an inline type list
(--types int,float64,string) or --whole-line. Flags override schema values.

Types: bool, char, int, int8-int64, uint, uint8-uint64, float32, float64,
string, duration, time, line.

By default reading stops at the first rejected line. With --keep-going every
rejected line is reported and reading continues. A stream failure always stops.

Prompts are written to stderr before each line when stdin is a terminal,
or always with --prompt-always.

Exit codes:
  0 - Every line parsed
  1 - At least one line was rejected
  2 - Configuration or runtime error

Example:
  linr read --types int,int,string
  linr read --schema people.yaml --input people.csv --output json
  printf '1 2\n3 x\n' | linr read --types int,int --keep-going`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Schema, "schema", "s", "", "Schema file describing the line layout")
	cmd.Flags().StringVarP(&opts.Types, "types", "t", "", "Comma-separated field types (e.g. int,float64,string)")
	cmd.Flags().BoolVar(&opts.WholeLine, "whole-line", false, "Read every line as a single unsplit value")
	cmd.Flags().StringVarP(&opts.Delim, "delim", "d", "", "Field delimiter (a byte, or space|tab|comma|semicolon|pipe|colon)")
	cmd.Flags().StringVarP(&opts.Prompt, "prompt", "p", "", "Prompt written before each line")
	cmd.Flags().BoolVar(&opts.PromptAlways, "prompt-always", false, "Write the prompt even when stdin is not a terminal")
	cmd.Flags().IntVar(&opts.BufferSize, "buffer-size", schema.DefaultBufferSize, "Initial line buffer size in bytes")
	cmd.Flags().BoolVar(&opts.Ephemeral, "ephemeral", false, "Allocate per line instead of reusing a buffer")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read from a file instead of stdin")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|table)")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "Continue after a rejected line")
	cmd.Flags().IntVarP(&opts.MaxLines, "max-lines", "n", 0, "Stop after this many lines (0 for no limit)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include source, fields and duration in the summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no records")

	return cmd
}

func runRead(cmd *cobra.Command, opts *ReadOptions) error {
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := zerolog.Ctx(ctx)

	s, err := buildSchema(ctx, cmd, opts)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	in, source, closeInput, err := openInput(cmd, opts.Input)
	if err != nil {
		return err
	}
	defer closeInput()

	dec, err := schema.NewDecoder(s)
	if err != nil {
		return fmt.Errorf("preparing schema: %w", err)
	}

	r, err := dec.NewReader(in, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}

	var readOpts []linr.ReadOption
	if s.Prompt != "" && (opts.PromptAlways || isInteractive(in)) {
		readOpts = append(readOpts, linr.Prompt(s.Prompt))
	}

	log.Debug().
		Str("source", source).
		Strs("fields", s.Names()).
		Str("delimiter", s.Delimiter).
		Bool("ephemeral", s.Ephemeral).
		Int("buffer_size", s.BufferSize).
		Msg("reading")

	out := cmd.OutOrStdout()
	report := &output.Report{
		Metadata: output.Metadata{
			Source:    source,
			Fields:    s.Names(),
			StartedAt: time.Now(),
		},
	}

	streamErr := readLines(ctx, dec, r, readOpts, opts, formatter, report, out)

	report.Metadata.Duration = time.Since(report.Metadata.StartedAt)
	if err := formatter.FormatSummary(ctx, report, out); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if streamErr != nil {
		return fmt.Errorf("reading %s: %w", source, streamErr)
	}

	if report.HasFailures() {
		ExitCode = 1
	}
	return nil
}

// readLines decodes lines until the input ends, the line limit is reached
// or a line is rejected without --keep-going. It returns an error only
// when the stream itself fails.
func readLines(ctx context.Context, dec *schema.Decoder, r *linr.Reader, readOpts []linr.ReadOption,
	opts *ReadOptions, formatter output.Formatter, report *output.Report, out io.Writer) error {
	log := zerolog.Ctx(ctx)
	names := report.Metadata.Fields

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			report.Summary.Stopped = true
			return err
		}
		if opts.MaxLines > 0 && report.Summary.LinesRead >= opts.MaxLines {
			report.Summary.Stopped = true
			return nil
		}

		values, err := dec.Decode(r, readOpts...)
		if err == nil {
			rec := &output.Record{Line: line, Values: values}
			report.CountRecord()
			if err := formatter.FormatRecord(ctx, rec, out); err != nil {
				return fmt.Errorf("formatting output: %w", err)
			}
			continue
		}

		if errors.Is(err, linr.EndOfFile) {
			return nil
		}

		fail := output.NewFailure(line, err, names)
		report.CountFailure(fail)
		if ferr := formatter.FormatFailure(ctx, fail, out); ferr != nil {
			return fmt.Errorf("formatting output: %w", ferr)
		}

		if fail.Code.IsStream() {
			report.Summary.Stopped = true
			return err
		}

		log.Debug().Int("line", line).Int("field", fail.Field).Str("error", fail.Code.String()).Msg("rejected line")

		if !opts.KeepGoing {
			report.Summary.Stopped = true
			return nil
		}
	}
}

// buildSchema resolves the line layout from the schema file or inline
// flags, then applies flag overrides.
func buildSchema(ctx context.Context, cmd *cobra.Command, opts *ReadOptions) (*schema.Schema, error) {
	sources := 0
	for _, set := range []bool{opts.Schema != "", opts.Types != "", opts.WholeLine} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New("exactly one of --schema, --types or --whole-line is required")
	}

	var (
		s   *schema.Schema
		err error
	)
	switch {
	case opts.Schema != "":
		s, err = schema.Load(ctx, opts.Schema)
		if err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}
	case opts.Types != "":
		s, err = schema.FromTypes(opts.Types)
		if err != nil {
			return nil, fmt.Errorf("invalid --types: %w", err)
		}
	default:
		s = schema.DefaultSchema()
		s.Fields = []schema.FieldConfig{{Name: "line", Type: string(schema.TypeLine)}}
	}

	flags := cmd.Flags()
	if flags.Changed("delim") {
		s.Delimiter = opts.Delim
	}
	if flags.Changed("prompt") {
		s.Prompt = opts.Prompt
	}
	if flags.Changed("buffer-size") {
		s.BufferSize = opts.BufferSize
	}
	if flags.Changed("ephemeral") {
		s.Ephemeral = opts.Ephemeral
	}

	if err := schema.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// openInput returns the command's stdin or the named file.
func openInput(cmd *cobra.Command, path string) (io.Reader, string, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), "stdin", func() {}, nil
	}

	// #nosec G304 - path is provided by user via CLI
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening input: %w", err)
	}
	return f, path, func() { _ = f.Close() }, nil
}

// isInteractive reports whether in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
