package rules_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
	"github.com/sammollineaux/three-trios/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

var (
	phoenix = model.NewCard("Phoenix", 4, 9, 6, 2)
	filler  = model.NewCard("Filler", 1, 1, 1, 1)
)

func (s *EngineSuite) slotBoard(rows, cols int) *model.Board {
	board, err := model.NewSlotBoard(rows, cols)
	s.Require().NoError(err)
	return board
}

func (s *EngineSuite) newEngine(board *model.Board, red, blue []model.Card, opts ...rules.Option) *rules.Engine {
	opts = append([]rules.Option{rules.WithLogger(testutil.NopLogger())}, opts...)
	engine, err := rules.New(board, model.NewHand(red...), model.NewHand(blue...), opts...)
	s.Require().NoError(err)
	return engine
}

func (s *EngineSuite) owner(engine *rules.Engine, row, col int) model.PlayerColor {
	contents, err := engine.CellContents(row, col)
	s.Require().NoError(err)
	s.Require().True(contents.Occupied, "cell (%d,%d) is empty", row, col)
	return contents.Owner
}

// Capture tests

func (s *EngineSuite) TestPlacedCardCapturesWeakerNeighbour() {
	weak := model.NewCard("Weakling", 3, 3, 3, 5)
	engine := s.newEngine(s.slotBoard(5, 5),
		[]model.Card{phoenix}, []model.Card{weak, filler},
		rules.WithStartingPlayer(model.Blue))

	s.Require().NoError(engine.PlayTurn(2, 3, weak))
	result, err := engine.Play(2, 2, phoenix)
	s.Require().NoError(err)

	s.Equal(model.Red, s.owner(engine, 2, 3))
	s.Equal([]model.Position{{Row: 2, Col: 3}}, result.Flipped)
}

func (s *EngineSuite) TestTieDoesNotCapture() {
	sturdy := model.NewCard("Sturdy", 3, 3, 3, 6)
	engine := s.newEngine(s.slotBoard(5, 5),
		[]model.Card{phoenix}, []model.Card{sturdy, filler},
		rules.WithStartingPlayer(model.Blue))

	s.Require().NoError(engine.PlayTurn(2, 3, sturdy))
	result, err := engine.Play(2, 2, phoenix)
	s.Require().NoError(err)

	s.Equal(model.Blue, s.owner(engine, 2, 3))
	s.Empty(result.Flipped)
}

func (s *EngineSuite) TestDefenderDoesNotCaptureAttacker() {
	// Blue's weak West faces Phoenix's East; only the card being placed attacks
	weak := model.NewCard("Weakling", 3, 3, 3, 5)
	engine := s.newEngine(s.slotBoard(5, 5),
		[]model.Card{phoenix, filler}, []model.Card{weak})

	s.Require().NoError(engine.PlayTurn(2, 2, phoenix))
	s.Require().NoError(engine.PlayTurn(2, 3, weak))

	s.Equal(model.Red, s.owner(engine, 2, 2))
	s.Equal(model.Blue, s.owner(engine, 2, 3))
}

func (s *EngineSuite) TestOwnCardsAreNeverFlipped() {
	strong := model.NewCard("Strong", 9, 9, 9, 9)
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{filler, strong}, []model.Card{filler})

	s.Require().NoError(engine.PlayTurn(1, 0, filler))
	s.Require().NoError(engine.PlayTurn(2, 2, filler))
	result, err := engine.Play(1, 1, strong)
	s.Require().NoError(err)

	s.Empty(result.Flipped)
	s.Equal(model.Red, s.owner(engine, 1, 0))
	s.Equal(model.Blue, s.owner(engine, 2, 2))
}

func (s *EngineSuite) TestCapturesDoNotChain() {
	// Red captures (1,1); (1,1) would beat (1,2) but captures are single-step
	strong := model.NewCard("Strong", 1, 1, 9, 1)
	middle := model.NewCard("Middle", 1, 1, 8, 1)
	edge := model.NewCard("Edge", 1, 1, 1, 1)
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{strong, filler}, []model.Card{middle, edge},
		rules.WithStartingPlayer(model.Blue))

	s.Require().NoError(engine.PlayTurn(1, 1, middle))
	s.Require().NoError(engine.PlayTurn(0, 0, filler))
	s.Require().NoError(engine.PlayTurn(1, 2, edge))
	result, err := engine.Play(1, 0, strong)
	s.Require().NoError(err)

	s.Equal([]model.Position{{Row: 1, Col: 1}}, result.Flipped)
	s.Equal(model.Red, s.owner(engine, 1, 1))
	s.Equal(model.Blue, s.owner(engine, 1, 2))
}

func (s *EngineSuite) TestCapturesAllFourDirections() {
	strong := model.NewCard("Strong", 9, 9, 9, 9)
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{filler, filler, filler, strong},
		[]model.Card{filler, filler, filler, filler},
		rules.WithStartingPlayer(model.Blue))

	s.Require().NoError(engine.PlayTurn(0, 1, filler))
	s.Require().NoError(engine.PlayTurn(0, 0, filler))
	s.Require().NoError(engine.PlayTurn(1, 0, filler))
	s.Require().NoError(engine.PlayTurn(0, 2, filler))
	s.Require().NoError(engine.PlayTurn(1, 2, filler))
	s.Require().NoError(engine.PlayTurn(2, 0, filler))
	s.Require().NoError(engine.PlayTurn(2, 1, filler))

	result, err := engine.Play(1, 1, strong)
	s.Require().NoError(err)
	s.Len(result.Flipped, 4)
	for _, pos := range result.Flipped {
		s.Equal(model.Red, s.owner(engine, pos.Row, pos.Col))
	}
}

// Turn and validation tests

func (s *EngineSuite) TestTurnAlternates() {
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{filler, filler}, []model.Card{filler})

	s.Equal(model.Red, engine.CurrentPlayer())
	s.Require().NoError(engine.PlayTurn(0, 0, filler))
	s.Equal(model.Blue, engine.CurrentPlayer())
	s.Require().NoError(engine.PlayTurn(2, 2, filler))
	s.Equal(model.Red, engine.CurrentPlayer())
}

func (s *EngineSuite) TestPlayOnOccupiedCellLeavesStateUnchanged() {
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{phoenix}, []model.Card{filler})

	s.Require().NoError(engine.PlayTurn(1, 1, phoenix))
	err := engine.PlayTurn(1, 1, filler)

	s.ErrorIs(err, model.ErrInvalidMove)
	s.Equal(model.Blue, engine.CurrentPlayer())
	s.Equal([]model.Card{filler}, engine.BlueHand())
	s.Equal(model.Red, s.owner(engine, 1, 1))
}

func (s *EngineSuite) TestPlayOnHoleIsInvalidMove() {
	kinds := [][]model.CellKind{
		{model.CardSlot, model.Hole, model.CardSlot},
		{model.CardSlot, model.CardSlot, model.CardSlot},
	}
	board, err := model.NewBoard(kinds, 2, 3)
	s.Require().NoError(err)
	engine := s.newEngine(board, []model.Card{phoenix}, []model.Card{filler})

	err = engine.PlayTurn(0, 1, phoenix)
	s.ErrorIs(err, model.ErrInvalidMove)
	s.NotErrorIs(err, model.ErrOutOfBounds)
	s.Equal(model.Red, engine.CurrentPlayer())
	s.Equal([]model.Card{phoenix}, engine.RedHand())
}

func (s *EngineSuite) TestPlayOutOfRangeIsOutOfBounds() {
	engine := s.newEngine(s.slotBoard(5, 5), []model.Card{phoenix}, []model.Card{filler})

	for _, pos := range []model.Position{{Row: 5, Col: 0}, {Row: 0, Col: 5}, {Row: -1, Col: 2}, {Row: 2, Col: -1}} {
		err := engine.PlayTurn(pos.Row, pos.Col, phoenix)
		s.ErrorIs(err, model.ErrOutOfBounds, "position %s", pos)
		s.ErrorIs(err, model.ErrInvalidMove, "position %s", pos)
	}
	s.Equal(model.Red, engine.CurrentPlayer())
	s.Equal([]model.Card{phoenix}, engine.RedHand())
}

func (s *EngineSuite) TestPlayCardNotInHand() {
	engine := s.newEngine(s.slotBoard(3, 3), []model.Card{phoenix}, []model.Card{filler})

	err := engine.PlayTurn(0, 0, filler)
	s.ErrorIs(err, model.ErrHandInconsistency)
	s.True(engine.IsPlayable(0, 0))
	s.Equal(model.Red, engine.CurrentPlayer())
	s.Equal([]model.Card{phoenix}, engine.RedHand())
}

func (s *EngineSuite) TestPlayRemovesExactlyOneInstance() {
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{filler, phoenix, filler}, []model.Card{filler})

	s.Require().NoError(engine.PlayTurn(0, 0, filler))

	s.Equal([]model.Card{phoenix, filler}, engine.RedHand())
	contents, err := engine.CellContents(0, 0)
	s.Require().NoError(err)
	s.Equal(filler, contents.Card)
}

func (s *EngineSuite) TestPlayCardByIndex() {
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{filler, phoenix}, []model.Card{filler})

	result, err := engine.PlayCard(1, 0, 0)
	s.Require().NoError(err)
	s.Equal(phoenix, result.Card)
	s.Equal([]model.Card{filler}, engine.RedHand())

	_, err = engine.PlayCard(5, 1, 1)
	s.ErrorIs(err, model.ErrInvalidCardIndex)
}

func (s *EngineSuite) TestPlayAfterGameOver() {
	engine := s.newEngine(s.slotBoard(1, 1), []model.Card{phoenix, filler}, nil)

	s.Require().NoError(engine.PlayTurn(0, 0, phoenix))
	s.True(engine.IsGameOver())

	err := engine.PlayTurn(0, 0, filler)
	s.ErrorIs(err, model.ErrGameOver)
	s.ErrorIs(err, model.ErrInvalidMove)
}

func (s *EngineSuite) TestMissingBoard() {
	_, err := rules.New(nil, model.NewHand(), model.NewHand())
	s.ErrorIs(err, model.ErrInvalidConfiguration)
}

func (s *EngineSuite) TestEngineCopiesHands() {
	red := model.NewHand(phoenix)
	engine, err := rules.New(s.slotBoard(1, 1), red, model.NewHand())
	s.Require().NoError(err)

	s.Require().NoError(engine.PlayTurn(0, 0, phoenix))
	s.Equal(1, red.Len())
	s.Empty(engine.RedHand())
}

// Game over and winner tests

func (s *EngineSuite) TestGameOverOnlyWhenAllSlotsFull() {
	// 26 cards deal 13 to each side, enough for Red's 13 placements
	deck := make([]model.Card, 26)
	for i := range deck {
		deck[i] = filler
	}
	engine, err := rules.NewFromDeck(s.slotBoard(5, 5), deck, rules.WithLogger(testutil.NopLogger()))
	s.Require().NoError(err)

	positions := 0
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			s.False(engine.IsGameOver())
			s.Require().NoError(engine.PlayTurn(row, col, filler))
			positions++
			if positions == 24 {
				s.False(engine.IsGameOver())
			}
		}
	}
	s.True(engine.IsGameOver())
}

func (s *EngineSuite) TestHolesDoNotBlockGameOver() {
	kinds := [][]model.CellKind{
		{model.CardSlot, model.Hole},
		{model.Hole, model.Hole},
	}
	board, err := model.NewBoard(kinds, 2, 2)
	s.Require().NoError(err)
	engine := s.newEngine(board, []model.Card{filler}, nil)

	s.Require().NoError(engine.PlayTurn(0, 0, filler))
	s.True(engine.IsGameOver())
}

func (s *EngineSuite) cornerGame(redCards, blueCards int) *rules.Engine {
	red := make([]model.Card, redCards)
	blue := make([]model.Card, blueCards)
	for i := range red {
		red[i] = filler
	}
	for i := range blue {
		blue[i] = filler
	}
	engine := s.newEngine(s.slotBoard(3, 3), red, blue)
	s.Require().NoError(engine.PlayTurn(0, 0, filler))
	s.Require().NoError(engine.PlayTurn(0, 2, filler))
	s.Require().NoError(engine.PlayTurn(2, 0, filler))
	s.Require().NoError(engine.PlayTurn(2, 2, filler))
	return engine
}

func (s *EngineSuite) TestCheckWinnerDraw() {
	engine := s.cornerGame(4, 4)

	winner, ok := engine.CheckWinner()
	s.False(ok)
	s.Empty(winner)

	res := engine.Result()
	s.True(res.IsDraw())
	s.Equal(4, res.RedScore)
	s.Equal(4, res.BlueScore)
}

func (s *EngineSuite) TestCheckWinnerCountsHandCards() {
	engine := s.cornerGame(5, 4)

	winner, ok := engine.CheckWinner()
	s.True(ok)
	s.Equal(model.Red, winner)
	s.Equal(5, engine.Score(model.Red))
	s.Equal(4, engine.Score(model.Blue))
}

func (s *EngineSuite) TestCheckWinnerCountsCapturedCards() {
	weak := model.NewCard("Weakling", 3, 3, 3, 5)
	engine := s.newEngine(s.slotBoard(1, 3),
		[]model.Card{phoenix}, []model.Card{weak, filler},
		rules.WithStartingPlayer(model.Blue))

	s.Require().NoError(engine.PlayTurn(0, 1, weak))
	s.Require().NoError(engine.PlayTurn(0, 0, phoenix))

	s.Equal(2, engine.Score(model.Red))
	s.Equal(1, engine.Score(model.Blue))
	winner, ok := engine.CheckWinner()
	s.True(ok)
	s.Equal(model.Red, winner)
}

// Query tests

func (s *EngineSuite) TestGetFlipCountDoesNotMutate() {
	weak := model.NewCard("Weakling", 3, 3, 3, 5)
	engine := s.newEngine(s.slotBoard(5, 5),
		[]model.Card{phoenix, filler}, []model.Card{weak, filler},
		rules.WithStartingPlayer(model.Blue))
	s.Require().NoError(engine.PlayTurn(2, 3, weak))

	count, err := engine.GetFlipCount(0, 2, 2)
	s.Require().NoError(err)
	s.Equal(1, count)

	count, err = engine.GetFlipCount(1, 2, 2)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.True(engine.IsPlayable(2, 2))
	s.Equal(model.Blue, s.owner(engine, 2, 3))
	s.Equal(model.Red, engine.CurrentPlayer())
	s.Len(engine.RedHand(), 2)
}

func (s *EngineSuite) TestGetFlipCountErrors() {
	engine := s.newEngine(s.slotBoard(3, 3), []model.Card{phoenix}, []model.Card{filler})
	s.Require().NoError(engine.PlayTurn(0, 0, phoenix))

	_, err := engine.GetFlipCount(3, 1, 1)
	s.ErrorIs(err, model.ErrInvalidCardIndex)

	_, err = engine.GetFlipCount(0, 0, 0)
	s.ErrorIs(err, model.ErrInvalidMove)

	_, err = engine.GetFlipCount(0, 3, 3)
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *EngineSuite) TestCardOwner() {
	engine := s.newEngine(s.slotBoard(3, 3), []model.Card{phoenix}, []model.Card{filler})
	s.Require().NoError(engine.PlayTurn(1, 1, phoenix))

	owner, err := engine.CardOwner(1, 1)
	s.Require().NoError(err)
	s.Equal("Red", owner)

	owner, err = engine.CardOwner(0, 0)
	s.Require().NoError(err)
	s.Empty(owner)

	_, err = engine.CardOwner(4, 4)
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *EngineSuite) TestSnapshotIsIsolated() {
	engine := s.newEngine(s.slotBoard(3, 3),
		[]model.Card{phoenix, filler}, []model.Card{filler})

	snap := engine.Snapshot()
	s.Require().NoError(engine.PlayTurn(1, 1, phoenix))

	s.True(snap.IsPlayable(1, 1))
	s.Len(snap.Hand(model.Red), 2)
	s.Equal(model.Red, snap.CurrentPlayer())
	s.False(engine.IsPlayable(1, 1))
	s.Equal(engine.Snapshot().Result(), engine.Result())
}

func (s *EngineSuite) TestSnapshotUnknownColourHasNoHand() {
	engine := s.newEngine(s.slotBoard(1, 3),
		[]model.Card{phoenix, filler}, []model.Card{filler})
	snap := engine.Snapshot()
	green := model.PlayerColor("Green")

	s.Nil(engine.Hand(green))
	s.Nil(snap.Hand(green))
	s.Equal(engine.Score(green), snap.Score(green))

	rows, cols := snap.Dimensions()
	s.Equal(1, rows)
	s.Equal(3, cols)
}

// Invariant tests

func (s *EngineSuite) TestEveryCardHasExactlyOneLocation() {
	deck := make([]model.Card, 10)
	for i := range deck {
		deck[i] = model.NewCard(string(rune('A'+i)), i%4+1, (i+1)%4+1, (i+2)%4+1, (i+3)%4+1)
	}
	engine, err := rules.NewFromDeck(s.slotBoard(3, 3), deck)
	s.Require().NoError(err)

	for !engine.IsGameOver() {
		hand := engine.Hand(engine.CurrentPlayer())
		s.Require().NotEmpty(hand)
		snap := engine.Snapshot()
		played := false
		for row := 0; row < 3 && !played; row++ {
			for col := 0; col < 3 && !played; col++ {
				if snap.IsPlayable(row, col) {
					s.Require().NoError(engine.PlayTurn(row, col, hand[0]))
					played = true
				}
			}
		}

		seen := map[string]int{}
		for _, c := range engine.RedHand() {
			seen[c.Name]++
		}
		for _, c := range engine.BlueHand() {
			seen[c.Name]++
		}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				contents, err := engine.CellContents(row, col)
				s.Require().NoError(err)
				if contents.Occupied {
					seen[contents.Card.Name]++
				}
			}
		}
		s.Len(seen, len(deck))
		for name, count := range seen {
			s.Equal(1, count, "card %s", name)
		}
	}
}

func (s *EngineSuite) TestConcurrentReadersDuringPlay() {
	deck := make([]model.Card, 26)
	for i := range deck {
		deck[i] = model.NewCard(string(rune('a'+i)), i%9+1, (i+3)%9+1, (i+5)%9+1, (i+7)%9+1)
	}
	engine, err := rules.NewFromDeck(s.slotBoard(5, 5), deck)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				res := engine.Result()
				// Every card is always owned by someone
				if res.RedScore+res.BlueScore != len(deck) {
					s.Failf("scores out of sync", "red %d blue %d", res.RedScore, res.BlueScore)
				}
			}
		}()
	}

	for !engine.IsGameOver() {
		pos := engine.Snapshot()
		placed := false
		for row := 0; row < 5 && !placed; row++ {
			for col := 0; col < 5 && !placed; col++ {
				if pos.IsPlayable(row, col) {
					_, err := engine.PlayCard(0, row, col)
					s.Require().NoError(err)
					placed = true
				}
			}
		}
	}
	close(done)
	wg.Wait()
}

func (s *EngineSuite) TestCheckDeckSize() {
	board := s.slotBoard(3, 3)

	s.ErrorIs(rules.CheckDeckSize(board, testutil.Deck(9)), model.ErrInvalidConfiguration)
	s.NoError(rules.CheckDeckSize(board, testutil.Deck(10)))
}

func (s *EngineSuite) TestDealSplitsInHalf() {
	deck := testutil.Deck(5)

	red, blue := rules.Deal(deck)
	s.Equal(deck[:2], red.Cards())
	s.Equal(deck[2:], blue.Cards())
}
