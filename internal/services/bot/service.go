package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/services/game"
)

const (
	// MaxBotIterations is a safety limit for the ProcessBotActions loop
	MaxBotIterations = 1000
)

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionPlace        BotActionType = "place"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during ProcessBotActions
type BotAction struct {
	Type     BotActionType
	Color    model.PlayerColor
	Strategy string
	Move     model.Move
	Turn     *model.TurnResult
}

// Service plays the seats of a game that are controlled by strategies
type Service struct {
	gameController game.ControllerInterface
	strategies     Registry
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController game.ControllerInterface,
	strategies Registry,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registry the service draws from
func (s *Service) Strategies() Registry {
	return s.strategies
}

// ValidateSeat checks that a seat is human or names a registered strategy
func (s *Service) ValidateSeat(seat model.Seat) error {
	if !seat.IsBot() {
		return nil
	}
	_, err := s.strategies.Get(seat.Controller)
	return err
}

// ProcessBotActions executes bot moves in a cascading loop until a human
// seat is to move or the game ends. It returns every action taken so the
// caller can render them.
func (s *Service) ProcessBotActions(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	var actions []BotAction

	for i := 0; i < MaxBotIterations; i++ {
		if err := ctx.Err(); err != nil {
			return actions, err
		}

		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		// Stop if game is finished
		if g.IsComplete() {
			if len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete})
			}
			break
		}

		engine, err := s.gameController.GetEngine(ctx, gameID)
		if err != nil {
			return actions, err
		}

		color := engine.CurrentPlayer()
		seat := g.Seat(color)
		if !seat.IsBot() {
			break // Human's turn
		}

		strategy, err := s.strategies.Get(seat.Controller)
		if err != nil {
			return actions, err
		}

		move, err := strategy.ChooseMove(color, engine.Snapshot())
		if err != nil {
			return actions, fmt.Errorf("%s strategy for %s: %w", strategy.Name(), color, err)
		}

		turn, err := s.gameController.PlayTurn(ctx, gameID, color, move.CardIndex, move.Position.Row, move.Position.Col)
		if err != nil {
			return actions, err
		}

		s.logger.Debug("bot played",
			slog.String("game_id", string(gameID)),
			slog.String("color", color.String()),
			slog.String("strategy", strategy.Name()),
			slog.String("card", move.Card.Name),
			slog.String("position", move.Position.String()),
			slog.Int("flipped", len(turn.Flipped)),
		)

		actions = append(actions, BotAction{
			Type:     ActionPlace,
			Color:    color,
			Strategy: strategy.Name(),
			Move:     move,
			Turn:     turn,
		})
	}

	return actions, nil
}
