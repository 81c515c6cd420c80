package rules

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/sammollineaux/three-trios/internal/model"
)

// Engine is the turn state machine. It exclusively owns the board, both
// hands and the turn pointer; all access goes through its methods.
//
// A placement (validate, place, remove from hand, capture, advance turn)
// runs entirely under the write lock. Queries take the read lock, so any
// number of readers may run together but never alongside a placement.
type Engine struct {
	mu      sync.RWMutex
	board   *model.Board
	hands   map[model.PlayerColor]*model.Hand
	current model.PlayerColor
	logger  *slog.Logger
}

// Option configures an Engine
type Option func(e *Engine)

// WithLogger sets the logger used for turn-level debug output
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.With(slog.String("component", "rules-engine"))
		}
	}
}

// WithStartingPlayer overrides which colour moves first (Red by default)
func WithStartingPlayer(color model.PlayerColor) Option {
	return func(e *Engine) {
		if color == model.Red || color == model.Blue {
			e.current = color
		}
	}
}

// New creates an engine over the given board and hands. The engine takes
// its own copies so callers keep no mutable reference into game state.
func New(board *model.Board, red, blue model.Hand, opts ...Option) (*Engine, error) {
	if board == nil {
		return nil, fmt.Errorf("nil board: %w", model.ErrInvalidConfiguration)
	}

	redHand := red.Clone()
	blueHand := blue.Clone()
	e := &Engine{
		board: board.Clone(),
		hands: map[model.PlayerColor]*model.Hand{
			model.Red:  &redHand,
			model.Blue: &blueHand,
		},
		current: model.Red,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewFromDeck deals the deck (first half Red, second half Blue) and
// creates an engine
func NewFromDeck(board *model.Board, deck []model.Card, opts ...Option) (*Engine, error) {
	red, blue := Deal(deck)
	return New(board, red, blue, opts...)
}

// Deal splits a deck in half: the first half to Red, the rest to Blue
func Deal(deck []model.Card) (red, blue model.Hand) {
	half := len(deck) / 2
	return model.NewHand(deck[:half]...), model.NewHand(deck[half:]...)
}

// CheckDeckSize rejects a deck too small to fill the board. Red moves first
// on an odd slot count and so needs one more card than Blue; dealing half
// to each side therefore needs at least slots+1 cards.
func CheckDeckSize(board *model.Board, deck []model.Card) error {
	need := board.CardSlotCount() + 1
	if len(deck) < need {
		return fmt.Errorf("deck has %d cards, board with %d slots needs at least %d: %w",
			len(deck), board.CardSlotCount(), need, model.ErrInvalidConfiguration)
	}
	return nil
}

// PlayTurn places card from the current player's hand at (row, col),
// resolves captures and passes the turn. On error nothing has changed.
func (e *Engine) PlayTurn(row, col int, card model.Card) error {
	_, err := e.Play(row, col, card)
	return err
}

// Play is PlayTurn that also reports what the placement captured
func (e *Engine) Play(row, col int, card model.Card) (*model.TurnResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(model.Position{Row: row, Col: col}, card)
}

// PlayCard plays the card at cardIndex in the current player's hand
func (e *Engine) PlayCard(cardIndex, row, col int) (*model.TurnResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	card, err := e.hands[e.current].Get(cardIndex)
	if err != nil {
		return nil, err
	}
	return e.apply(model.Position{Row: row, Col: col}, card)
}

// apply runs one full placement transition. Caller holds the write lock.
func (e *Engine) apply(pos model.Position, card model.Card) (*model.TurnResult, error) {
	if e.board.IsFull() {
		return nil, fmt.Errorf("play at %s: %w: %w", pos, model.ErrInvalidMove, model.ErrGameOver)
	}
	if err := checkPlayable(e.board, pos); err != nil {
		return nil, err
	}

	color := e.current
	hand := e.hands[color]
	idx := hand.IndexOf(card)
	if idx < 0 {
		return nil, fmt.Errorf("%s plays %q: %w", color, card.Name, model.ErrHandInconsistency)
	}

	if err := hand.Remove(card); err != nil {
		return nil, err
	}
	if err := e.board.Place(pos, card, color); err != nil {
		// Unreachable after checkPlayable, but never leave the card in limbo
		hand.InsertAt(idx, card)
		return nil, err
	}

	flipped := captures(e.board, pos, card, color)
	for _, fpos := range flipped {
		if err := e.board.Flip(fpos, color); err != nil {
			return nil, err
		}
	}

	e.current = color.Other()

	result := &model.TurnResult{
		Color:    color,
		Card:     card,
		Position: pos,
		Flipped:  flipped,
		GameOver: e.board.IsFull(),
	}

	e.logger.Debug("card placed",
		slog.String("color", color.String()),
		slog.String("card", card.Name),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.Int("flipped", len(flipped)),
	)

	return result, nil
}

// GetFlipCount returns how many cards hand[cardIndex] of the current player
// would capture if placed at (row, col). It never mutates state.
func (e *Engine) GetFlipCount(cardIndex, row, col int) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.flipCountLocked(e.current, cardIndex, row, col)
}

// FlipCountFor is GetFlipCount for an explicit colour's hand
func (e *Engine) FlipCountFor(color model.PlayerColor, cardIndex, row, col int) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.flipCountLocked(color, cardIndex, row, col)
}

func (e *Engine) flipCountLocked(color model.PlayerColor, cardIndex, row, col int) (int, error) {
	hand, ok := e.hands[color]
	if !ok {
		return 0, fmt.Errorf("unknown colour %q: %w", color, model.ErrInvalidMove)
	}
	return flipCount(e.board, hand.Cards(), color, cardIndex, model.Position{Row: row, Col: col})
}

// IsGameOver returns true once every card slot holds a card
func (e *Engine) IsGameOver() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.IsFull()
}

// CheckWinner returns the colour owning more cards (hand + board), or false
// on a draw. It may be called at any point in the game.
func (e *Engine) CheckWinner() (model.PlayerColor, bool) {
	res := e.Result()
	if res.Winner == nil {
		return "", false
	}
	return *res.Winner, true
}

// Result returns both scores and the winner, if any
func (e *Engine) Result() model.GameResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return result(e.scoreLocked(model.Red), e.scoreLocked(model.Blue))
}

// Score returns the number of cards owned by color, in hand and on the board
func (e *Engine) Score(color model.PlayerColor) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scoreLocked(color)
}

func (e *Engine) scoreLocked(color model.PlayerColor) int {
	hand, ok := e.hands[color]
	if !ok {
		return 0
	}
	return hand.Len() + e.board.OwnedCount(color)
}

func result(red, blue int) model.GameResult {
	res := model.GameResult{RedScore: red, BlueScore: blue}
	switch {
	case red > blue:
		winner := model.Red
		res.Winner = &winner
	case blue > red:
		winner := model.Blue
		res.Winner = &winner
	}
	return res
}

// CurrentPlayer returns the colour to move
func (e *Engine) CurrentPlayer() model.PlayerColor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Dimensions returns the grid size
func (e *Engine) Dimensions() (rows, cols int) {
	return e.board.Dimensions()
}

// CellContents returns the contents of the cell at (row, col)
func (e *Engine) CellContents(row, col int) (model.CellContents, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.Cell(model.Position{Row: row, Col: col})
}

// IsPlayable returns true if (row, col) is an empty card slot
func (e *Engine) IsPlayable(row, col int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.IsPlayable(model.Position{Row: row, Col: col})
}

// CardOwner returns the owner's colour name for an occupied cell and ""
// for holes and empty slots
func (e *Engine) CardOwner(row, col int) (string, error) {
	contents, err := e.CellContents(row, col)
	if err != nil {
		return "", err
	}
	if !contents.Occupied {
		return "", nil
	}
	return contents.Owner.String(), nil
}

// Hand returns a copy of the given colour's hand
func (e *Engine) Hand(color model.PlayerColor) []model.Card {
	e.mu.RLock()
	defer e.mu.RUnlock()
	hand, ok := e.hands[color]
	if !ok {
		return nil
	}
	return hand.Cards()
}

// RedHand returns a copy of Red's hand
func (e *Engine) RedHand() []model.Card {
	return e.Hand(model.Red)
}

// BlueHand returns a copy of Blue's hand
func (e *Engine) BlueHand() []model.Card {
	return e.Hand(model.Blue)
}

// Snapshot returns a consistent deep copy of the current state
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return &Snapshot{
		board:   e.board.Clone(),
		red:     e.hands[model.Red].Cards(),
		blue:    e.hands[model.Blue].Cards(),
		current: e.current,
	}
}

func invalidMove(pos model.Position, cause error) error {
	if cause != nil {
		return fmt.Errorf("play at %s: %w: %w", pos, model.ErrInvalidMove, cause)
	}
	return fmt.Errorf("play at %s: %w", pos, model.ErrInvalidMove)
}

// IsRuleViolation reports whether err is a rejected move rather than an
// internal failure
func IsRuleViolation(err error) bool {
	return errors.Is(err, model.ErrInvalidMove) ||
		errors.Is(err, model.ErrHandInconsistency) ||
		errors.Is(err, model.ErrInvalidCardIndex)
}

var _ View = (*Engine)(nil)
