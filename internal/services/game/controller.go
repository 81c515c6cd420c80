package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/sammollineaux/three-trios/internal/dependencies/clock"
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
	"github.com/sammollineaux/three-trios/internal/storage"
)

// Controller manages game sessions and turn flow on top of the rules engine
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	// Passed to each engine, which adds its own component
	engineLogger *slog.Logger

	// Serializes the whose-turn check with the placement that follows it
	turnMu sync.Mutex
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "game-controller")),

		engineLogger: logger,
	}
}

// CreateGame deals the deck onto a new engine and records the session.
// Colours without a seat are played by a human.
func (c *Controller) CreateGame(ctx context.Context, board *model.Board, deck []model.Card, seats ...model.Seat) (*model.Game, error) {
	if board == nil {
		return nil, fmt.Errorf("create game: nil board: %w", model.ErrInvalidConfiguration)
	}
	if err := rules.CheckDeckSize(board, deck); err != nil {
		return nil, err
	}

	engine, err := rules.NewFromDeck(board, deck, rules.WithLogger(c.engineLogger))
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		State:     model.GameStateInProgress,
		Seats:     make(map[model.PlayerColor]model.Seat, 2),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, color := range model.Colors() {
		game.Seats[color] = model.Seat{Color: color, Controller: model.ControllerHuman}
	}
	for _, seat := range seats {
		if seat.Color != model.Red && seat.Color != model.Blue {
			return nil, fmt.Errorf("seat colour %q: %w", seat.Color, model.ErrInvalidConfiguration)
		}
		if seat.Controller == "" {
			seat.Controller = model.ControllerHuman
		}
		game.Seats[seat.Color] = seat
	}

	if err := c.storage.SaveEngine(ctx, game.ID, engine); err != nil {
		return nil, err
	}
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	rows, cols := engine.Dimensions()
	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.Int("deck_size", len(deck)),
		slog.String("red", game.Seat(model.Red).Controller),
		slog.String("blue", game.Seat(model.Blue).Controller),
	)

	return game, nil
}

// GetGame retrieves a game record by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetEngine retrieves the rules engine for a game
func (c *Controller) GetEngine(ctx context.Context, gameID model.GameID) (*rules.Engine, error) {
	return c.storage.GetEngine(ctx, gameID)
}

// ListGames returns every known game, oldest first
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// PlayTurn plays hand[cardIndex] of color at (row, col). It fails with
// ErrNotPlayerTurn if color is not the one to move.
func (c *Controller) PlayTurn(ctx context.Context, gameID model.GameID, color model.PlayerColor, cardIndex, row, col int) (*model.TurnResult, error) {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsComplete() {
		return nil, model.ErrGameOver
	}

	engine, err := c.storage.GetEngine(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if current := engine.CurrentPlayer(); current != color {
		return nil, fmt.Errorf("%s moved but %s is to play: %w", color, current, model.ErrNotPlayerTurn)
	}

	result, err := engine.PlayCard(cardIndex, row, col)
	if err != nil {
		return nil, err
	}

	game.TurnCount++
	game.UpdatedAt = c.clock.Now()

	c.logger.Debug("turn played",
		slog.String("game_id", string(gameID)),
		slog.String("color", color.String()),
		slog.String("card", result.Card.Name),
		slog.Int("row", row),
		slog.Int("col", col),
		slog.Int("flipped", len(result.Flipped)),
	)

	if result.GameOver {
		c.completeGame(game, engine.Result())
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return result, nil
}

// completeGame marks the game finished and records the winner
func (c *Controller) completeGame(game *model.Game, res model.GameResult) {
	game.State = model.GameStateComplete
	game.Winner = res.Winner

	winner := "draw"
	if res.Winner != nil {
		winner = res.Winner.String()
	}
	c.logger.Info("game completed",
		slog.String("game_id", string(game.ID)),
		slog.Int("turns", game.TurnCount),
		slog.Int("red_score", res.RedScore),
		slog.Int("blue_score", res.BlueScore),
		slog.String("winner", winner),
	)
}

// Result returns the current scores for a game. Before the game is
// complete this is informational only.
func (c *Controller) Result(ctx context.Context, gameID model.GameID) (model.GameResult, error) {
	engine, err := c.storage.GetEngine(ctx, gameID)
	if err != nil {
		return model.GameResult{}, err
	}
	return engine.Result(), nil
}

// DeleteGame removes a game and its engine
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, board *model.Board, deck []model.Card, seats ...model.Seat) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetEngine(ctx context.Context, gameID model.GameID) (*rules.Engine, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	PlayTurn(ctx context.Context, gameID model.GameID, color model.PlayerColor, cardIndex, row, col int) (*model.TurnResult, error)
	Result(ctx context.Context, gameID model.GameID) (model.GameResult, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
}

var _ ControllerInterface = (*Controller)(nil)
