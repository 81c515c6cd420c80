package rules

import "github.com/sammollineaux/three-trios/internal/model"

// View is the read-only query surface strategies and renderers use.
// Nothing reachable through it can change game state.
type View interface {
	Dimensions() (rows, cols int)
	CellContents(row, col int) (model.CellContents, error)
	IsPlayable(row, col int) bool
	Hand(color model.PlayerColor) []model.Card
	CurrentPlayer() model.PlayerColor
	IsGameOver() bool
	Score(color model.PlayerColor) int
	FlipCountFor(color model.PlayerColor, cardIndex, row, col int) (int, error)
}

// Snapshot is an immutable copy of engine state taken at one instant.
// Strategies evaluate against a snapshot so a long scan sees one
// consistent board.
type Snapshot struct {
	board   *model.Board
	red     []model.Card
	blue    []model.Card
	current model.PlayerColor
}

var _ View = (*Snapshot)(nil)

func (s *Snapshot) Dimensions() (rows, cols int) {
	return s.board.Dimensions()
}

func (s *Snapshot) CellContents(row, col int) (model.CellContents, error) {
	return s.board.Cell(model.Position{Row: row, Col: col})
}

func (s *Snapshot) IsPlayable(row, col int) bool {
	return s.board.IsPlayable(model.Position{Row: row, Col: col})
}

func (s *Snapshot) Hand(color model.PlayerColor) []model.Card {
	src := s.hand(color)
	if src == nil {
		return nil
	}
	result := make([]model.Card, len(src))
	copy(result, src)
	return result
}

func (s *Snapshot) CurrentPlayer() model.PlayerColor {
	return s.current
}

func (s *Snapshot) IsGameOver() bool {
	return s.board.IsFull()
}

func (s *Snapshot) Score(color model.PlayerColor) int {
	return len(s.hand(color)) + s.board.OwnedCount(color)
}

// Result returns both scores and the winner at the time of the snapshot
func (s *Snapshot) Result() model.GameResult {
	return result(s.Score(model.Red), s.Score(model.Blue))
}

func (s *Snapshot) FlipCountFor(color model.PlayerColor, cardIndex, row, col int) (int, error) {
	return flipCount(s.board, s.hand(color), color, cardIndex, model.Position{Row: row, Col: col})
}

// hand returns nil for anything but Red or Blue, as Engine.Hand does
func (s *Snapshot) hand(color model.PlayerColor) []model.Card {
	switch color {
	case model.Red:
		return s.red
	case model.Blue:
		return s.blue
	}
	return nil
}
