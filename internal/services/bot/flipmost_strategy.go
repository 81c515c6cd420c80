package bot

import (
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// FlipMostStrategy plays whichever card and cell captures the most cards
// this turn. Ties go to the earliest cell in row-major order, then the
// earliest card in hand. A move that captures nothing is still returned.
type FlipMostStrategy struct{}

// NewFlipMostStrategy creates a new FlipMostStrategy
func NewFlipMostStrategy() *FlipMostStrategy {
	return &FlipMostStrategy{}
}

func (s *FlipMostStrategy) Name() string {
	return model.StrategyFlipMost
}

func (s *FlipMostStrategy) ChooseMove(color model.PlayerColor, view rules.View) (model.Move, error) {
	hand := view.Hand(color)
	if len(hand) == 0 {
		return model.Move{}, noLegalMove(color, "empty hand")
	}

	best := -1
	var move model.Move
	for _, pos := range playableCells(view) {
		for i, card := range hand {
			count, err := view.FlipCountFor(color, i, pos.Row, pos.Col)
			if err != nil {
				return model.Move{}, err
			}
			if count > best {
				best = count
				move = model.Move{CardIndex: i, Card: card, Position: pos}
			}
		}
	}

	if best < 0 {
		return model.Move{}, noLegalMove(color, "no playable cell")
	}
	return move, nil
}
