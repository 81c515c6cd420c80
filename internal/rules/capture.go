package rules

import "github.com/sammollineaux/three-trios/internal/model"

// captures returns the neighbours of pos that card, played by color, would
// flip. Each of the four neighbours is checked once against the same card
// values; a capture never triggers further captures.
func captures(board *model.Board, pos model.Position, card model.Card, color model.PlayerColor) []model.Position {
	var flipped []model.Position
	for _, d := range model.Directions() {
		npos := pos.Step(d)
		neighbour, err := board.Cell(npos)
		if err != nil {
			continue // Off the board
		}
		if !neighbour.Occupied || neighbour.Owner == color {
			continue
		}
		if card.Attack(d) > neighbour.Card.Attack(d.Opposite()) {
			flipped = append(flipped, npos)
		}
	}
	return flipped
}

// flipCount evaluates a hypothetical placement without touching the board
func flipCount(board *model.Board, hand []model.Card, color model.PlayerColor, cardIndex int, pos model.Position) (int, error) {
	if cardIndex < 0 || cardIndex >= len(hand) {
		return 0, model.ErrInvalidCardIndex
	}
	if err := checkPlayable(board, pos); err != nil {
		return 0, err
	}
	return len(captures(board, pos, hand[cardIndex], color)), nil
}

// checkPlayable distinguishes out-of-range positions from rule violations
func checkPlayable(board *model.Board, pos model.Position) error {
	if !board.InBounds(pos) {
		return invalidMove(pos, model.ErrOutOfBounds)
	}
	if !board.IsPlayable(pos) {
		return invalidMove(pos, nil)
	}
	return nil
}
