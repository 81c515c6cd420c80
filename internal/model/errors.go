package model

import "errors"

// Common errors used across the application
var (
	// Rules errors
	ErrInvalidMove       = errors.New("invalid move")
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrCellEmpty         = errors.New("cell holds no card")
	ErrHandInconsistency = errors.New("card not in acting player's hand")
	ErrInvalidCardIndex  = errors.New("invalid card index")
	ErrGameOver          = errors.New("game is over")
	ErrNoLegalMove       = errors.New("no legal move available")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Game session errors
	ErrGameNotFound    = errors.New("game not found")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrUnknownStrategy = errors.New("unknown strategy")
)
