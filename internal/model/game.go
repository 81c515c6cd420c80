package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress" // Moves still being played
	GameStateComplete   GameState = "complete"    // Every card slot filled
)

// ControllerHuman marks a seat whose moves come from outside the bot service
const ControllerHuman = "human"

// Seat records who controls one colour in a game
type Seat struct {
	Color      PlayerColor
	Controller string // ControllerHuman or a strategy name
}

// IsBot returns true if the seat is played by a strategy
func (s Seat) IsBot() bool {
	return s.Controller != "" && s.Controller != ControllerHuman
}

// Game is the session record for one match. The board and hands live in
// the rules engine stored alongside it.
type Game struct {
	ID        GameID
	State     GameState
	Seats     map[PlayerColor]Seat
	TurnCount int

	// Set once State is complete; nil means a draw
	Winner *PlayerColor

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete returns true once the final card has been placed
func (g *Game) IsComplete() bool {
	return g.State == GameStateComplete
}

// Seat returns the seat for a colour, defaulting to a human seat
func (g *Game) Seat(color PlayerColor) Seat {
	if s, ok := g.Seats[color]; ok {
		return s
	}
	return Seat{Color: color, Controller: ControllerHuman}
}

// GameResult is the per-colour card count and the resulting winner
type GameResult struct {
	RedScore  int
	BlueScore int
	Winner    *PlayerColor // nil on a draw
}

// IsDraw returns true if both colours own the same number of cards
func (r GameResult) IsDraw() bool {
	return r.Winner == nil
}

// Score returns the score for one colour
func (r GameResult) Score(color PlayerColor) int {
	if color == Red {
		return r.RedScore
	}
	return r.BlueScore
}
