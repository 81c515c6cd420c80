package model

import "fmt"

// Card is an immutable value: a name and one attack value per edge.
// Cards compare by value, so two cards with the same name and strengths
// are interchangeable.
type Card struct {
	Name  string
	North int
	South int
	East  int
	West  int
}

// NewCard creates a card from its name and north/south/east/west strengths
func NewCard(name string, north, south, east, west int) Card {
	return Card{
		Name:  name,
		North: north,
		South: south,
		East:  east,
		West:  west,
	}
}

// Attack returns the card's strength on the given edge
func (c Card) Attack(d Direction) int {
	switch d {
	case North:
		return c.North
	case South:
		return c.South
	case East:
		return c.East
	default:
		return c.West
	}
}

func (c Card) String() string {
	return fmt.Sprintf("%s %d %d %d %d", c.Name, c.North, c.South, c.East, c.West)
}

// Move is a fully specified placement: which hand card goes where
type Move struct {
	CardIndex int
	Card      Card
	Position  Position
}
