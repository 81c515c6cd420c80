package bot

import (
	"github.com/sammollineaux/three-trios/internal/dependencies/random"
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// RandomStrategy picks a random card and a random empty cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

func (s *RandomStrategy) Name() string {
	return model.StrategyRandom
}

// ChooseMove draws the cell first, then the card
func (s *RandomStrategy) ChooseMove(color model.PlayerColor, view rules.View) (model.Move, error) {
	hand := view.Hand(color)
	if len(hand) == 0 {
		return model.Move{}, noLegalMove(color, "empty hand")
	}
	cells := playableCells(view)
	if len(cells) == 0 {
		return model.Move{}, noLegalMove(color, "no playable cell")
	}

	pos := cells[s.random.Intn(len(cells))]
	idx := s.random.Intn(len(hand))
	return model.Move{CardIndex: idx, Card: hand[idx], Position: pos}, nil
}
