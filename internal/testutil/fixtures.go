package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sammollineaux/three-trios/internal/model"
)

// SlotBoard returns a rows x cols board with no holes
func SlotBoard(t testing.TB, rows, cols int) *model.Board {
	t.Helper()
	board, err := model.NewSlotBoard(rows, cols)
	require.NoError(t, err)
	return board
}

// ParseBoard builds a board from rows of 'C' (card slot) and 'X' (hole)
func ParseBoard(t testing.TB, rows ...string) *model.Board {
	t.Helper()
	require.NotEmpty(t, rows)
	kinds := make([][]model.CellKind, len(rows))
	for r, line := range rows {
		kinds[r] = make([]model.CellKind, len(line))
		for c, ch := range line {
			switch ch {
			case 'C':
				kinds[r][c] = model.CardSlot
			case 'X':
				kinds[r][c] = model.Hole
			default:
				t.Fatalf("bad board character %q", ch)
			}
		}
	}
	board, err := model.NewBoard(kinds, len(rows), len(rows[0]))
	require.NoError(t, err)
	return board
}

// Uniform returns a card with the same strength on every side
func Uniform(name string, strength int) model.Card {
	return model.NewCard(name, strength, strength, strength, strength)
}

// Deck returns n distinct cards with varied strengths
func Deck(n int) []model.Card {
	deck := make([]model.Card, n)
	for i := range deck {
		deck[i] = model.NewCard(fmt.Sprintf("Card%02d", i),
			i%9+1, (i+3)%9+1, (i+5)%9+1, (i+7)%9+1)
	}
	return deck
}
