package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebot/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the recipebot CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "recipebot",
		Short: "Voice assistant backend for a personal recipe book",
		Long: `recipebot answers Russian voice commands about recipes: adding them,
recording cooking steps, and finding what can be cooked from a set of
ingredients.

Configuration is read from RECIPEBOT_* environment variables; flags
override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadConfig reads the environment and applies the --db and --addr
// flags when the command has them and they were set.
func loadConfig(cmd *cobra.Command, database, addr string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if cmd.Flags().Changed("db") {
		cfg.Database = database
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}

// Execute runs the root command with args and reports a failure on the
// command's stderr in the selected format. It returns the exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	format, _ := cmd.PersistentFlags().GetString("format")
	if !slices.Contains(ValidFormats, format) {
		format = "text"
	}
	code := GetExitCode(err)
	errCode := ErrCodeFailure
	if code == ExitCommandError {
		errCode = ErrCodeCommand
	}

	f := &OutputFormatter{Format: format, Writer: cmd.ErrOrStderr()}
	_ = f.Error(errCode, err.Error(), nil)
	return code
}
