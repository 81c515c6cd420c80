package model

import "fmt"

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellKind distinguishes playable slots from holes
type CellKind int

const (
	Hole CellKind = iota
	CardSlot
)

func (k CellKind) String() string {
	if k == CardSlot {
		return "card_slot"
	}
	return "hole"
}

// cell is a single grid square. occupied is only ever set on a CardSlot.
type cell struct {
	kind     CellKind
	occupied bool
	card     Card
	owner    PlayerColor
}

// CellContents is a read-only view of a cell. Exactly one of three shapes:
// a hole, an empty slot, or an occupied slot carrying Card and Owner.
type CellContents struct {
	Kind     CellKind
	Occupied bool
	Card     Card
	Owner    PlayerColor
}

// IsHole returns true if the cell can never hold a card
func (c CellContents) IsHole() bool {
	return c.Kind == Hole
}

// IsEmpty returns true if the cell is a slot with no card in it
func (c CellContents) IsEmpty() bool {
	return c.Kind == CardSlot && !c.Occupied
}

// Board is a fixed rows x cols grid of holes and card slots.
// The number of card slots is always odd.
type Board struct {
	rows  int
	cols  int
	cells [][]cell // Row-major: cells[row][col]
}

// NewBoard creates a board from a matrix of cell kinds. The matrix must be
// rows x cols and contain an odd number of CardSlot cells.
func NewBoard(kinds [][]CellKind, rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board dimensions %dx%d: %w", rows, cols, ErrInvalidConfiguration)
	}
	if len(kinds) != rows {
		return nil, fmt.Errorf("board has %d rows, expected %d: %w", len(kinds), rows, ErrInvalidConfiguration)
	}

	cells := make([][]cell, rows)
	slots := 0
	for row := 0; row < rows; row++ {
		if len(kinds[row]) != cols {
			return nil, fmt.Errorf("board row %d has %d columns, expected %d: %w", row, len(kinds[row]), cols, ErrInvalidConfiguration)
		}
		cells[row] = make([]cell, cols)
		for col := 0; col < cols; col++ {
			cells[row][col] = cell{kind: kinds[row][col]}
			if kinds[row][col] == CardSlot {
				slots++
			}
		}
	}

	if slots%2 == 0 {
		return nil, fmt.Errorf("board has %d card slots, must be odd: %w", slots, ErrInvalidConfiguration)
	}

	return &Board{rows: rows, cols: cols, cells: cells}, nil
}

// NewSlotBoard creates a rows x cols board where every cell is a CardSlot
func NewSlotBoard(rows, cols int) (*Board, error) {
	kinds := make([][]CellKind, rows)
	for i := range kinds {
		kinds[i] = make([]CellKind, cols)
		for j := range kinds[i] {
			kinds[i][j] = CardSlot
		}
	}
	return NewBoard(kinds, rows, cols)
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns
func (b *Board) Cols() int {
	return b.cols
}

// Dimensions returns the number of rows and columns
func (b *Board) Dimensions() (rows, cols int) {
	return b.rows, b.cols
}

// InBounds returns true if the position is within the grid
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

func (b *Board) checkBounds(pos Position) error {
	if !b.InBounds(pos) {
		return fmt.Errorf("%s on %dx%d board: %w", pos, b.rows, b.cols, ErrOutOfBounds)
	}
	return nil
}

// Cell returns the contents of the cell at pos
func (b *Board) Cell(pos Position) (CellContents, error) {
	if err := b.checkBounds(pos); err != nil {
		return CellContents{}, err
	}
	c := b.cells[pos.Row][pos.Col]
	return CellContents{
		Kind:     c.kind,
		Occupied: c.occupied,
		Card:     c.card,
		Owner:    c.owner,
	}, nil
}

// IsPlayable returns true if pos is an empty card slot. Out-of-range
// positions are simply not playable.
func (b *Board) IsPlayable(pos Position) bool {
	if !b.InBounds(pos) {
		return false
	}
	c := b.cells[pos.Row][pos.Col]
	return c.kind == CardSlot && !c.occupied
}

// Place puts card at pos for owner. It never overwrites an occupied cell.
func (b *Board) Place(pos Position, card Card, owner PlayerColor) error {
	if err := b.checkBounds(pos); err != nil {
		return err
	}
	c := &b.cells[pos.Row][pos.Col]
	if c.kind != CardSlot {
		return fmt.Errorf("%s is a hole: %w", pos, ErrInvalidMove)
	}
	if c.occupied {
		return fmt.Errorf("%s is occupied: %w", pos, ErrInvalidMove)
	}
	c.occupied = true
	c.card = card
	c.owner = owner
	return nil
}

// Flip reassigns the owner of the card at pos, leaving the card untouched.
// Flipping to the current owner is a no-op.
func (b *Board) Flip(pos Position, owner PlayerColor) error {
	if err := b.checkBounds(pos); err != nil {
		return err
	}
	c := &b.cells[pos.Row][pos.Col]
	if !c.occupied {
		return fmt.Errorf("flip at %s: %w", pos, ErrCellEmpty)
	}
	c.owner = owner
	return nil
}

// CardSlotCount returns the number of playable cells, occupied or not
func (b *Board) CardSlotCount() int {
	count := 0
	b.each(func(_ Position, c cell) {
		if c.kind == CardSlot {
			count++
		}
	})
	return count
}

// EmptySlotCount returns the number of card slots with no card
func (b *Board) EmptySlotCount() int {
	count := 0
	b.each(func(_ Position, c cell) {
		if c.kind == CardSlot && !c.occupied {
			count++
		}
	})
	return count
}

// IsFull returns true if every card slot is occupied. Holes are ignored.
func (b *Board) IsFull() bool {
	return b.EmptySlotCount() == 0
}

// OwnedCount returns how many board cards the colour currently owns
func (b *Board) OwnedCount(owner PlayerColor) int {
	count := 0
	b.each(func(_ Position, c cell) {
		if c.occupied && c.owner == owner {
			count++
		}
	})
	return count
}

// PlayablePositions returns every empty card slot in row-major order
func (b *Board) PlayablePositions() []Position {
	var result []Position
	b.each(func(pos Position, c cell) {
		if c.kind == CardSlot && !c.occupied {
			result = append(result, pos)
		}
	})
	return result
}

// Corners returns the four corner positions: top-left, top-right,
// bottom-left, bottom-right. On a single row or column some coincide.
func (b *Board) Corners() []Position {
	last := Position{Row: b.rows - 1, Col: b.cols - 1}
	return []Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: last.Col},
		{Row: last.Row, Col: 0},
		last,
	}
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]cell, b.rows)
	for i := range b.cells {
		cells[i] = make([]cell, b.cols)
		copy(cells[i], b.cells[i])
	}
	return &Board{rows: b.rows, cols: b.cols, cells: cells}
}

func (b *Board) each(fn func(pos Position, c cell)) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			fn(Position{Row: row, Col: col}, b.cells[row][col])
		}
	}
}
