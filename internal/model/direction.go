package model

// Direction is one of the four card edges
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions returns the four directions in the order captures are resolved
func Directions() []Direction {
	return []Direction{North, South, West, East}
}

// Opposite returns the edge that faces this one across a shared border
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Offset returns the row/col delta of the neighbour in this direction
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	default:
		return 0, -1
	}
}

// Step returns the position one cell away in direction d
func (p Position) Step(d Direction) Position {
	dr, dc := d.Offset()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "unknown"
}
