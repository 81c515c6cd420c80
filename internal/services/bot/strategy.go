package bot

import (
	"fmt"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// Strategy recommends a placement for one colour. Implementations only read
// the view; the caller applies the returned move.
type Strategy interface {
	// Name is the registry key for the strategy
	Name() string
	// ChooseMove returns a legal move for color, or ErrNoLegalMove
	ChooseMove(color model.PlayerColor, view rules.View) (model.Move, error)
}

// playableCells lists empty card slots in row-major order
func playableCells(view rules.View) []model.Position {
	rows, cols := view.Dimensions()
	var cells []model.Position
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if view.IsPlayable(row, col) {
				cells = append(cells, model.Position{Row: row, Col: col})
			}
		}
	}
	return cells
}

// corners returns the four board corners: top-left, top-right,
// bottom-left, bottom-right
func corners(view rules.View) []model.Position {
	rows, cols := view.Dimensions()
	return []model.Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: cols - 1},
		{Row: rows - 1, Col: 0},
		{Row: rows - 1, Col: cols - 1},
	}
}

func noLegalMove(color model.PlayerColor, reason string) error {
	return fmt.Errorf("%s: %s: %w", color, reason, model.ErrNoLegalMove)
}
