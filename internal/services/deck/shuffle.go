package deck

import (
	"github.com/sammollineaux/three-trios/internal/dependencies/random"
	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// Shuffle returns a shuffled copy of cards; the input is left untouched
func Shuffle(cards []model.Card, rnd random.Random) []model.Card {
	shuffled := make([]model.Card, len(cards))
	copy(shuffled, cards)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal splits cards in half: the first half to Red, the rest to Blue.
// Blue receives the extra card of an odd-sized deck.
func Deal(cards []model.Card) (red, blue model.Hand) {
	return rules.Deal(cards)
}
