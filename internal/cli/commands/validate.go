package commands

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/linr/pkg/schema"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema-file>",
		Short: "Validate a schema file",
		Long: `Validate a linr schema file without reading any input.

Checks:
  - YAML syntax
  - At least one field, with unique names
  - Known field types
  - Delimiter is a single byte or a known name
  - Time fields share one layout
  - A line field is the only field`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", schemaPath)

	s, err := schema.Load(ctx, schemaPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := schema.NewDecoder(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nSchema valid!\n")
	fmt.Fprintf(w, "  Delimiter:   %s\n", s.Delimiter)
	fmt.Fprintf(w, "  Buffer size: %d\n", s.BufferSize)
	if s.Prompt != "" {
		fmt.Fprintf(w, "  Prompt:      %q\n", s.Prompt)
	}
	if s.Ephemeral {
		fmt.Fprintf(w, "  Ephemeral:   yes\n")
	}

	fmt.Fprintf(w, "\nFields:\n")
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Layout"})
	for i, f := range s.Fields {
		t.AppendRow(table.Row{i + 1, f.Name, f.Type, f.Layout})
	}
	t.Render()

	if s.WholeLine() {
		fmt.Fprintf(w, "\nEach line is read whole; the delimiter is not used.\n")
	} else {
		fmt.Fprintf(w, "\nEach line must hold exactly %d fields; repeated delimiters count as one.\n", len(s.Fields))
	}

	return nil
}
