package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/services/bot"
	"github.com/sammollineaux/three-trios/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: two bots play a full game without any outside input
func (s *IntegrationSuite) TestBotVersusBotGame() {
	game, err := s.app.GameController.CreateGame(s.ctx, testutil.SlotBoard(s.T(), 3, 3), testutil.Deck(10),
		model.Seat{Color: model.Red, Controller: model.StrategyFlipMost},
		model.Seat{Color: model.Blue, Controller: model.StrategyBestCorner},
	)
	s.Require().NoError(err)

	actions, err := s.app.BotService.ProcessBotActions(s.ctx, game.ID)
	s.Require().NoError(err)

	// 9 placements then the completion marker
	s.Require().Len(actions, 10)
	for i, action := range actions[:9] {
		s.Equal(bot.ActionPlace, action.Type)
		if i%2 == 0 {
			s.Equal(model.Red, action.Color)
			s.Equal(model.StrategyFlipMost, action.Strategy)
		} else {
			s.Equal(model.Blue, action.Color)
			s.Equal(model.StrategyBestCorner, action.Strategy)
		}
	}
	s.Equal(bot.ActionGameComplete, actions[9].Type)

	stored, err := s.app.GameController.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.True(stored.IsComplete())
	s.Equal(9, stored.TurnCount)

	res, err := s.app.GameController.Result(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(10, res.RedScore+res.BlueScore)
	s.Equal(res.Winner, stored.Winner)
}

// Test: a human seat pauses the bot loop until the human moves
func (s *IntegrationSuite) TestHumanVersusBotAlternates() {
	game, err := s.app.GameController.CreateGame(s.ctx, testutil.SlotBoard(s.T(), 3, 3), testutil.Deck(10),
		model.Seat{Color: model.Blue, Controller: model.StrategyFlipMost},
	)
	s.Require().NoError(err)

	actions, err := s.app.BotService.ProcessBotActions(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(actions)

	_, err = s.app.GameController.PlayTurn(s.ctx, game.ID, model.Red, 0, 1, 1)
	s.Require().NoError(err)

	actions, err = s.app.BotService.ProcessBotActions(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.Blue, actions[0].Color)

	engine, err := s.app.GameController.GetEngine(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.Red, engine.CurrentPlayer())
	s.Len(engine.RedHand(), 4)
	s.Len(engine.BlueHand(), 4)
}

// Test: the random strategy draws from the injected source
func (s *IntegrationSuite) TestRandomStrategyUsesMockRandom() {
	game, err := s.app.GameController.CreateGame(s.ctx, testutil.SlotBoard(s.T(), 3, 3), testutil.Deck(10),
		model.Seat{Color: model.Blue, Controller: model.StrategyRandom},
	)
	s.Require().NoError(err)

	_, err = s.app.GameController.PlayTurn(s.ctx, game.ID, model.Red, 0, 0, 0)
	s.Require().NoError(err)

	// Cell 7 of the 8 open cells is (2,2); card 3 of Blue's hand
	s.app.MockRandom.QueueIntn(7, 3)
	actions, err := s.app.BotService.ProcessBotActions(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.Position{Row: 2, Col: 2}, actions[0].Move.Position)
	s.Equal(3, actions[0].Move.CardIndex)
}

func TestNewWithSeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	seed := uint64(42)

	play := func() []string {
		app, err := New(Config{Seed: &seed})
		require.NoError(t, err)
		game, err := app.GameController.CreateGame(ctx, testutil.SlotBoard(t, 3, 3), testutil.Deck(10),
			model.Seat{Color: model.Red, Controller: model.StrategyRandom},
			model.Seat{Color: model.Blue, Controller: model.StrategyRandom},
		)
		require.NoError(t, err)
		_, err = app.BotService.ProcessBotActions(ctx, game.ID)
		require.NoError(t, err)
		engine, err := app.GameController.GetEngine(ctx, game.ID)
		require.NoError(t, err)
		var cells []string
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				contents, err := engine.CellContents(row, col)
				require.NoError(t, err)
				cells = append(cells, contents.Owner.String()+":"+contents.Card.Name)
			}
		}
		return cells
	}

	first := play()
	second := play()
	require.Len(t, first, 9)
	assert.Equal(t, first, second)
}

func TestNewRegistersLuaStrategy(t *testing.T) {
	script := filepath.Join(t.TempDir(), "first.lua")
	err := os.WriteFile(script, []byte(`
function choose(state)
  for r = 0, state.rows - 1 do
    for c = 0, state.cols - 1 do
      if state.playable(r, c) then return 0, r, c end
    end
  end
end
`), 0o600)
	require.NoError(t, err)

	app, err := New(Config{LuaScript: script})
	require.NoError(t, err)
	_, err = app.Strategies.Get(model.StrategyLua)
	assert.NoError(t, err)
}

func TestNewRejectsMissingLuaScript(t *testing.T) {
	_, err := New(Config{LuaScript: filepath.Join(t.TempDir(), "missing.lua")})
	assert.Error(t, err)
}
