package bot

import (
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// BestCornerStrategy plays into an open corner, choosing the corner and card
// whose edges most outrank the cards already beside that corner, whoever
// owns them.
//
// A candidate must beat a differential of zero to be chosen. Otherwise the
// top-left corner with the first card is played; if that corner is taken the
// first open corner is used, and with no open corner the move falls back to
// the flip-most choice.
type BestCornerStrategy struct {
	fallback Strategy
}

// NewBestCornerStrategy creates a new BestCornerStrategy
func NewBestCornerStrategy() *BestCornerStrategy {
	return &BestCornerStrategy{fallback: NewFlipMostStrategy()}
}

func (s *BestCornerStrategy) Name() string {
	return model.StrategyBestCorner
}

func (s *BestCornerStrategy) ChooseMove(color model.PlayerColor, view rules.View) (model.Move, error) {
	hand := view.Hand(color)
	if len(hand) == 0 {
		return model.Move{}, noLegalMove(color, "empty hand")
	}

	best := 0
	found := false
	var move model.Move
	var open []model.Position
	for _, corner := range corners(view) {
		if !view.IsPlayable(corner.Row, corner.Col) {
			continue
		}
		open = append(open, corner)
		for i, card := range hand {
			diff := s.differential(view, card, corner)
			if diff > best {
				best = diff
				found = true
				move = model.Move{CardIndex: i, Card: card, Position: corner}
			}
		}
	}
	if found {
		return move, nil
	}

	if len(open) > 0 {
		// open[0] is (0,0) whenever the top-left corner is free
		return model.Move{CardIndex: 0, Card: hand[0], Position: open[0]}, nil
	}
	return s.fallback.ChooseMove(color, view)
}

// differential sums card's advantage over each card adjacent to pos.
// Off-board and empty neighbours add nothing.
func (s *BestCornerStrategy) differential(view rules.View, card model.Card, pos model.Position) int {
	total := 0
	for _, d := range model.Directions() {
		npos := pos.Step(d)
		neighbour, err := view.CellContents(npos.Row, npos.Col)
		if err != nil || !neighbour.Occupied {
			continue
		}
		total += card.Attack(d) - neighbour.Card.Attack(d.Opposite())
	}
	return total
}
