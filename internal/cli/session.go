package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sammollineaux/three-trios/internal/factory"
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/services/deck"
)

// addSeatFlags registers the seat, seed and script flags shared by play and simulate
func addSeatFlags(cmd *cobra.Command, red, blue string) {
	seatHelp := fmt.Sprintf("seat: %s, %s or %s (with --lua-script)",
		model.ControllerHuman, strings.Join(model.ValidStrategies(), ", "), model.StrategyLua)
	cmd.Flags().StringVar(&cfg.Red, "red", red, "Red "+seatHelp)
	cmd.Flags().StringVar(&cfg.Blue, "blue", blue, "Blue "+seatHelp)
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 0, "Seed for shuffles and the random strategy")
	cmd.Flags().StringVar(&cfg.LuaScript, "lua-script", "", "Lua strategy script, playable as \"lua\"")
}

// newApp wires the application from the flags of cmd
func newApp(cmd *cobra.Command) (*factory.App, error) {
	appCfg := factory.Config{
		Logger:    logger,
		LuaScript: cfg.LuaScript,
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seeded = true
		seed := cfg.Seed
		appCfg.Seed = &seed
	}
	return factory.New(appCfg)
}

// loadSetup reads the grid and card files named in the config
func loadSetup() (*deck.Setup, error) {
	if err := cfg.RequireFiles(); err != nil {
		return nil, err
	}
	return deck.Load(cfg.Grid, cfg.Cards)
}

// seats turns the --red and --blue flags into validated seats
func seats(app *factory.App) ([]model.Seat, error) {
	result := []model.Seat{
		{Color: model.Red, Controller: cfg.Red},
		{Color: model.Blue, Controller: cfg.Blue},
	}
	for _, seat := range result {
		if seat.Controller == "" {
			return nil, fmt.Errorf("%s seat has no controller: %w", seat.Color, model.ErrInvalidConfiguration)
		}
		if seat.Controller == model.StrategyLua && cfg.LuaScript == "" {
			return nil, fmt.Errorf("%s seat uses lua but --lua-script is not set: %w", seat.Color, model.ErrInvalidConfiguration)
		}
		if err := app.BotService.ValidateSeat(seat); err != nil {
			return nil, fmt.Errorf("%s seat: %w", seat.Color, err)
		}
	}
	return result, nil
}
