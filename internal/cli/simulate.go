package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/services/deck"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play many bot-vs-bot games and tally the results",
		Long: `Play a batch of games between two strategies.

The deck is shuffled before every game. Pass --seed for a reproducible run.`,
		Args: cobra.NoArgs,
		RunE: runSimulate,
	}

	addSeatFlags(cmd, model.StrategyFlipMost, model.StrategyBestCorner)
	cmd.Flags().IntVarP(&cfg.Games, "games", "n", cfg.Games, "Number of games to play")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if cfg.Games < 1 {
		return fmt.Errorf("--games must be at least 1: %w", model.ErrInvalidConfiguration)
	}
	if cfg.Red == model.ControllerHuman || cfg.Blue == model.ControllerHuman {
		return fmt.Errorf("simulate needs a strategy on both seats: %w", model.ErrInvalidConfiguration)
	}

	setup, err := loadSetup()
	if err != nil {
		return err
	}
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	gameSeats, err := seats(app)
	if err != nil {
		return err
	}

	result := SimulationResult{
		Games: cfg.Games,
		Red:   cfg.Red,
		Blue:  cfg.Blue,
	}
	if cfg.Seeded {
		result.Seed = cfg.Seed
	}

	for i := 0; i < cfg.Games; i++ {
		game, err := app.GameController.CreateGame(ctx, setup.Board, deck.Shuffle(setup.Cards, app.Random), gameSeats...)
		if err != nil {
			return err
		}
		if _, err := app.BotService.ProcessBotActions(ctx, game.ID); err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}

		res, err := app.GameController.Result(ctx, game.ID)
		if err != nil {
			return err
		}
		switch {
		case res.IsDraw():
			result.Draws++
		case *res.Winner == model.Red:
			result.RedWins++
		default:
			result.BlueWins++
		}

		if err := app.GameController.DeleteGame(ctx, game.ID); err != nil {
			return err
		}
	}

	out.Print(result)
	return nil
}
