package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	// One object per line so a game can be streamed
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGameView(v)
	case TurnView:
		o.printTurnView(v)
	case ResultView:
		o.printResultView(v)
	case SimulationResult:
		o.printSimulationResult(v)
	case ValidationResult:
		o.printValidationResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CardView is a card as shown to the user
type CardView struct {
	Name  string `json:"name"`
	North int    `json:"north"`
	South int    `json:"south"`
	East  int    `json:"east"`
	West  int    `json:"west"`
}

// GameView is the board and the hand of the colour to move
type GameView struct {
	Player    string     `json:"player"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Grid      []string   `json:"grid"`
	Hand      []CardView `json:"hand"`
	RedScore  int        `json:"red_score"`
	BlueScore int        `json:"blue_score"`
	GameOver  bool       `json:"game_over"`
}

// TurnView describes one placement
type TurnView struct {
	Color    string   `json:"color"`
	Played   string   `json:"played_by"`
	Card     CardView `json:"card"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Flipped  []string `json:"flipped"`
	GameOver bool     `json:"game_over"`
}

// ResultView is the final score of a game
type ResultView struct {
	RedScore  int     `json:"red_score"`
	BlueScore int     `json:"blue_score"`
	Winner    *string `json:"winner"`
}

// SimulationResult tallies a batch of bot games
type SimulationResult struct {
	Games    int    `json:"games"`
	Red      string `json:"red"`
	Blue     string `json:"blue"`
	RedWins  int    `json:"red_wins"`
	BlueWins int    `json:"blue_wins"`
	Draws    int    `json:"draws"`
	Seed     uint64 `json:"seed,omitempty"`
}

// ValidationResult summarizes a grid and card file pair that loaded cleanly
type ValidationResult struct {
	Grid      string `json:"grid"`
	Cards     string `json:"cards"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	CardSlots int    `json:"card_slots"`
	DeckSize  int    `json:"deck_size"`
}

// NewGameView renders a view from the perspective of the colour to move
func NewGameView(view rules.View) GameView {
	rows, cols := view.Dimensions()
	current := view.CurrentPlayer()

	gv := GameView{
		Player:    current.String(),
		Rows:      rows,
		Cols:      cols,
		Grid:      make([]string, 0, rows),
		Hand:      []CardView{},
		RedScore:  view.Score(model.Red),
		BlueScore: view.Score(model.Blue),
		GameOver:  view.IsGameOver(),
	}

	for row := 0; row < rows; row++ {
		var line strings.Builder
		for col := 0; col < cols; col++ {
			line.WriteString(cellSymbol(view, row, col))
		}
		gv.Grid = append(gv.Grid, line.String())
	}

	for _, card := range view.Hand(current) {
		gv.Hand = append(gv.Hand, newCardView(card))
	}
	return gv
}

// cellSymbol is X for a hole, _ for an empty slot, else the owner's initial
func cellSymbol(view rules.View, row, col int) string {
	contents, err := view.CellContents(row, col)
	switch {
	case err != nil || contents.IsHole():
		return "X"
	case !contents.Occupied:
		return "_"
	default:
		return contents.Owner.Initial()
	}
}

// NewTurnView describes a placement made by playedBy (a strategy or human)
func NewTurnView(turn *model.TurnResult, playedBy string) TurnView {
	tv := TurnView{
		Color:    turn.Color.String(),
		Played:   playedBy,
		Card:     newCardView(turn.Card),
		Row:      turn.Position.Row,
		Col:      turn.Position.Col,
		Flipped:  make([]string, 0, len(turn.Flipped)),
		GameOver: turn.GameOver,
	}
	for _, pos := range turn.Flipped {
		tv.Flipped = append(tv.Flipped, pos.String())
	}
	return tv
}

// NewResultView converts a game result
func NewResultView(res model.GameResult) ResultView {
	rv := ResultView{RedScore: res.RedScore, BlueScore: res.BlueScore}
	if res.Winner != nil {
		winner := res.Winner.String()
		rv.Winner = &winner
	}
	return rv
}

func newCardView(card model.Card) CardView {
	return CardView{
		Name:  card.Name,
		North: card.North,
		South: card.South,
		East:  card.East,
		West:  card.West,
	}
}

func (o *Output) printGameView(g GameView) {
	fmt.Fprintf(o.out, "Player: %s\n", strings.ToUpper(g.Player))
	for _, line := range g.Grid {
		for _, symbol := range line {
			fmt.Fprintf(o.out, " %c ", symbol)
		}
		fmt.Fprintln(o.out)
	}
	fmt.Fprintln(o.out, "Hand:")
	for _, c := range g.Hand {
		fmt.Fprintf(o.out, "%s %d %d %d %d\n", c.Name, c.North, c.South, c.East, c.West)
	}
}

func (o *Output) printTurnView(t TurnView) {
	fmt.Fprintf(o.out, "%s (%s) played %s at (%d,%d)", t.Color, t.Played, t.Card.Name, t.Row, t.Col)
	if len(t.Flipped) > 0 {
		fmt.Fprintf(o.out, ", flipped %s", strings.Join(t.Flipped, " "))
	}
	fmt.Fprintln(o.out)
}

func (o *Output) printResultView(r ResultView) {
	fmt.Fprintln(o.out, "Game over!")
	fmt.Fprintf(o.out, "Red: %d\n", r.RedScore)
	fmt.Fprintf(o.out, "Blue: %d\n", r.BlueScore)
	if r.Winner != nil {
		fmt.Fprintf(o.out, "Winner: %s\n", *r.Winner)
	} else {
		fmt.Fprintln(o.out, "Draw")
	}
}

func (o *Output) printSimulationResult(s SimulationResult) {
	fmt.Fprintf(o.out, "Games: %d\n", s.Games)
	fmt.Fprintf(o.out, "Red (%s) wins: %d\n", model.StrategyDisplayName(s.Red), s.RedWins)
	fmt.Fprintf(o.out, "Blue (%s) wins: %d\n", model.StrategyDisplayName(s.Blue), s.BlueWins)
	fmt.Fprintf(o.out, "Draws: %d\n", s.Draws)
}

func (o *Output) printValidationResult(v ValidationResult) {
	fmt.Fprintf(o.out, "Grid: %s (%dx%d, %d card slots)\n", v.Grid, v.Rows, v.Cols, v.CardSlots)
	fmt.Fprintf(o.out, "Cards: %s (%d cards)\n", v.Cards, v.DeckSize)
	fmt.Fprintln(o.out, "OK")
}
