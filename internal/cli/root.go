package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "threetrios",
		Short: "Play and simulate Three Trios card games",
		Long: `threetrios runs two-player Three Trios games in the terminal.

Games are set up from a grid file and a card file. Either seat can be played
by a human on stdin or by one of the built-in strategies, and whole
tournaments of bot games can be simulated.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfg.Grid, "grid", "g", cfg.Grid, "Grid file (env: THREETRIOS_GRID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Cards, "cards", "c", cfg.Cards, "Card file (env: THREETRIOS_CARDS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: THREETRIOS_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newValidateCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		NewOutput(cfg.Output, os.Stdout, os.Stderr).PrintError(err)
		return 1
	}
	return 0
}
