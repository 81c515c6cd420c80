package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
	"github.com/sammollineaux/three-trios/internal/services/bot"
	"github.com/sammollineaux/three-trios/internal/services/deck"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game, reading human moves from stdin",
		Long: `Play a game on the given grid and cards.

Human seats enter moves as "card_index row col", all 0-based, one per line.
Bot seats move on their own. The board is shown after every move.`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}

	addSeatFlags(cmd, model.ControllerHuman, model.StrategyFlipMost)
	cmd.Flags().BoolVar(&cfg.Shuffle, "shuffle", false, "Shuffle the deck before dealing")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	setup, err := loadSetup()
	if err != nil {
		return err
	}
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	gameSeats, err := seats(app)
	if err != nil {
		return err
	}

	cards := setup.Cards
	if cfg.Shuffle {
		cards = deck.Shuffle(cards, app.Random)
	}

	game, err := app.GameController.CreateGame(ctx, setup.Board, cards, gameSeats...)
	if err != nil {
		return err
	}
	engine, err := app.GameController.GetEngine(ctx, game.ID)
	if err != nil {
		return err
	}

	out.Print(NewGameView(engine))

	input := newLineReader(cmd.InOrStdin())
	defer input.close()
	for {
		actions, err := app.BotService.ProcessBotActions(ctx, game.ID)
		if err != nil {
			return err
		}
		for _, action := range actions {
			if action.Type != bot.ActionPlace {
				continue
			}
			out.Print(NewTurnView(action.Turn, action.Strategy))
			if !action.Turn.GameOver {
				out.Print(NewGameView(engine))
			}
		}

		if engine.IsGameOver() {
			break
		}

		color := engine.CurrentPlayer()
		out.PrintMessage(fmt.Sprintf("%s to move (card_index row col):", color))
		line, err := input.next(ctx)
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cardIndex, row, col, err := parseMove(line)
		if err != nil {
			out.PrintError(err)
			continue
		}
		turn, err := app.GameController.PlayTurn(ctx, game.ID, color, cardIndex, row, col)
		if err != nil {
			if rules.IsRuleViolation(err) {
				out.PrintError(err)
				continue
			}
			return err
		}

		out.Print(NewTurnView(turn, model.ControllerHuman))
		if !turn.GameOver {
			out.Print(NewGameView(engine))
		}
	}

	res, err := app.GameController.Result(ctx, game.ID)
	if err != nil {
		return err
	}
	out.Print(NewResultView(res))
	return nil
}

var errInputEnded = errors.New("input ended before the game finished")

// lineReader scans lines on its own goroutine so a blocked read on stdin
// never holds up cancellation.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error // set before lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string), done: make(chan struct{})}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		lr.err = scanner.Err()
	}()
	return lr
}

// next blocks until a line arrives, input ends or ctx is done
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", errInputEnded
		}
		return line, nil
	}
}

func (lr *lineReader) close() {
	close(lr.done)
}

// parseMove reads "card_index row col"
func parseMove(line string) (cardIndex, row, col int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected card_index row col, got %q", line)
	}
	values := make([]int, 3)
	for i, field := range fields {
		values[i], err = strconv.Atoi(field)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%q is not a number", field)
		}
	}
	return values[0], values[1], values[2], nil
}
