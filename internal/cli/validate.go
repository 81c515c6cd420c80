package cli

import (
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a grid and card file for errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := loadSetup()
			if err != nil {
				return err
			}

			rows, cols := setup.Board.Rows(), setup.Board.Cols()
			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(ValidationResult{
				Grid:      cfg.Grid,
				Cards:     cfg.Cards,
				Rows:      rows,
				Cols:      cols,
				CardSlots: setup.Board.CardSlotCount(),
				DeckSize:  len(setup.Cards),
			})
			return nil
		},
	}
}
