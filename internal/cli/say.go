package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebot/internal/config"
	"github.com/roach88/recipebot/internal/dialog"
	"github.com/roach88/recipebot/internal/store"
)

// SayOptions holds flags for the say command.
type SayOptions struct {
	*RootOptions
	Database   string
	NewSession bool
	UserID     string
}

// NewSayCommand creates the say command.
func NewSayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "say <utterance...>",
		Short: "Answer one utterance against the recipe database",
		Long: `Answer one utterance against the recipe database and print the reply.

The arguments are joined with spaces into a single utterance. With
--new-session the welcome text is printed and no command is run.

Example:
  recipebot say добавь рецепт Блины с ингредиентами мука, яйца, молоко
  recipebot say --format json что приготовить из мука, яйца, молоко
  recipebot say --new-session`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSay(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $RECIPEBOT_DB or recipes.db)")
	cmd.Flags().BoolVar(&opts.NewSession, "new-session", false, "treat the turn as the first of a session")
	cmd.Flags().StringVar(&opts.UserID, "user", "cli", "user id attached to the turn")

	return cmd
}

func runSay(opts *SayOptions, args []string, cmd *cobra.Command) error {
	utterance := strings.Join(args, " ")
	if strings.TrimSpace(utterance) == "" && !opts.NewSession {
		return NewExitError(ExitCommandError, "utterance is required (or pass --new-session)")
	}

	cfg, err := loadConfig(cmd, opts.Database, "")
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg, cmd.ErrOrStderr(), opts.Verbose)

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reply := dialog.New(st, logger).Handle(ctx, dialog.Turn{
		NewSession: opts.NewSession,
		UserID:     opts.UserID,
		Utterance:  utterance,
	})

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	formatter.VerboseLog("database: %s", cfg.Database)

	if opts.Format == "json" {
		return formatter.Success(reply)
	}
	return formatter.Success(reply.Text)
}
