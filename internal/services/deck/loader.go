package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

const (
	slotChar = 'C'
	holeChar = 'X'

	// aceStrength is the value of the "A" strength marker
	aceStrength = 10
)

// LoadGrid reads a board definition: a "rows cols" header line followed by
// rows lines of cols characters, C for a card slot and X for a hole.
func LoadGrid(r io.Reader) (*model.Board, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimRight(scanner.Text(), " \t\r")
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, configErr(lineNo, "missing grid header")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return nil, configErr(lineNo, "grid header needs rows and cols, got %q", header)
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil || rows <= 0 {
		return nil, configErr(lineNo, "bad row count %q", fields[0])
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil || cols <= 0 {
		return nil, configErr(lineNo, "bad column count %q", fields[1])
	}

	kinds := make([][]model.CellKind, rows)
	for row := 0; row < rows; row++ {
		line, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, configErr(lineNo, "expected %d grid rows, got %d", rows, row)
		}
		if len(line) != cols {
			return nil, configErr(lineNo, "grid row has %d cells, want %d", len(line), cols)
		}
		kinds[row] = make([]model.CellKind, cols)
		for col, ch := range []byte(line) {
			switch ch {
			case slotChar:
				kinds[row][col] = model.CardSlot
			case holeChar:
				kinds[row][col] = model.Hole
			default:
				return nil, configErr(lineNo, "invalid cell type %q at column %d", ch, col)
			}
		}
	}
	if extra, ok := next(); ok {
		return nil, configErr(lineNo, "unexpected content after grid: %q", extra)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return model.NewBoard(kinds, rows, cols)
}

// LoadGridFile reads a board definition from a file
func LoadGridFile(path string) (*model.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	board, err := LoadGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return board, nil
}

// LoadCards reads one card per line: "NAME N S E W". A strength of "A"
// means 10. Blank lines are skipped.
func LoadCards(r io.Reader) ([]model.Card, error) {
	var cards []model.Card
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 5 {
			return nil, configErr(lineNo, "card needs a name and 4 strengths, got %d fields", len(fields))
		}

		var strengths [4]int
		for i, field := range fields[1:] {
			value, err := parseStrength(field)
			if err != nil {
				return nil, configErr(lineNo, "card %s: %v", fields[0], err)
			}
			strengths[i] = value
		}
		cards = append(cards, model.NewCard(fields[0], strengths[0], strengths[1], strengths[2], strengths[3]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// LoadCardsFile reads a card list from a file
func LoadCardsFile(path string) ([]model.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cards, err := LoadCards(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

func parseStrength(s string) (int, error) {
	if s == "A" {
		return aceStrength, nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("strength %q is not a number or A", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("strength %d is negative", value)
	}
	return value, nil
}

func configErr(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), model.ErrInvalidConfiguration)
}

// Setup is a loaded board and the deck to deal onto it
type Setup struct {
	Board *model.Board
	Cards []model.Card
}

// Load reads both files and checks the deck is large enough for the board
func Load(gridPath, cardsPath string) (*Setup, error) {
	board, err := LoadGridFile(gridPath)
	if err != nil {
		return nil, err
	}
	cards, err := LoadCardsFile(cardsPath)
	if err != nil {
		return nil, err
	}
	if err := rules.CheckDeckSize(board, cards); err != nil {
		return nil, err
	}
	return &Setup{Board: board, Cards: cards}, nil
}
