package cli

import (
	"github.com/spf13/cobra"

	"github.com/sammollineaux/three-trios/internal/rules"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Show the opening position for a grid and card file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := loadSetup()
			if err != nil {
				return err
			}

			engine, err := rules.NewFromDeck(setup.Board, setup.Cards, rules.WithLogger(logger))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(NewGameView(engine))
			return nil
		},
	}
}
