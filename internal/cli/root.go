// Package cli provides the command-line interface for linr.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/linr/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var (
		debug   bool
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:   "linr",
		Short: "Read and parse typed, delimited lines",
		Long: `linr reads input one line at a time, splits each line into a fixed number
of delimiter-separated fields and converts every field to a declared type.

A line either parses completely or is rejected with the first failing field:
  - invalid input (text that does not convert, or the wrong field count)
  - out of range (a well-formed number too large for its type)

Describe a line layout with a YAML schema, or inline with --types, and linr
reports every record it reads. Use detect to infer a schema from samples.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := NewLogger(cmd.ErrOrStderr(), debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))

			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("loading env file: %w", err)
				}
				logger.Debug().Str("path", envFile).Msg("loaded environment")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every rejected line and reader setting to stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load LINR_* settings from a .env file")

	// Add subcommands
	rootCmd.AddCommand(commands.NewReadCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
