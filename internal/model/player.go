package model

import (
	"fmt"
	"strings"
)

// PlayerColor identifies one of the two sides
type PlayerColor string

const (
	Red  PlayerColor = "Red"
	Blue PlayerColor = "Blue"
)

// Colors returns both colours, Red first
func Colors() []PlayerColor {
	return []PlayerColor{Red, Blue}
}

// Other returns the opposing colour
func (c PlayerColor) Other() PlayerColor {
	if c == Red {
		return Blue
	}
	return Red
}

// Initial returns the single letter used when rendering ownership
func (c PlayerColor) Initial() string {
	return string(c)[:1]
}

func (c PlayerColor) String() string {
	return string(c)
}

// ParsePlayerColor accepts "red" or "blue" in any case
func ParsePlayerColor(s string) (PlayerColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return "", fmt.Errorf("unknown player colour %q", s)
}

// Hand is a player's ordered collection of not-yet-played cards
type Hand struct {
	cards []Card
}

// NewHand creates a hand holding the given cards in order
func NewHand(cards ...Card) Hand {
	h := Hand{cards: make([]Card, len(cards))}
	copy(h.cards, cards)
	return h
}

// Len returns the number of cards in hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Get returns the card at index i
func (h *Hand) Get(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, fmt.Errorf("card index %d with hand of %d: %w", i, len(h.cards), ErrInvalidCardIndex)
	}
	return h.cards[i], nil
}

// Cards returns a copy of the hand contents
func (h *Hand) Cards() []Card {
	result := make([]Card, len(h.cards))
	copy(result, h.cards)
	return result
}

// IndexOf returns the index of the first card equal to c, or -1
func (h *Hand) IndexOf(c Card) int {
	for i, card := range h.cards {
		if card == c {
			return i
		}
	}
	return -1
}

// Remove removes exactly one instance of c, preserving the order of the rest
func (h *Hand) Remove(c Card) error {
	idx := h.IndexOf(c)
	if idx < 0 {
		return fmt.Errorf("card %q not in hand: %w", c.Name, ErrHandInconsistency)
	}
	_, err := h.RemoveAt(idx)
	return err
}

// RemoveAt removes and returns the card at index i
func (h *Hand) RemoveAt(i int) (Card, error) {
	card, err := h.Get(i)
	if err != nil {
		return Card{}, err
	}
	h.cards = append(h.cards[:i:i], h.cards[i+1:]...)
	return card, nil
}

// InsertAt puts c back at index i, clamping i into range
func (h *Hand) InsertAt(i int, c Card) {
	if i < 0 {
		i = 0
	}
	if i > len(h.cards) {
		i = len(h.cards)
	}
	h.cards = append(h.cards[:i:i], append([]Card{c}, h.cards[i:]...)...)
}

// Clone returns an independent copy of the hand
func (h *Hand) Clone() Hand {
	return NewHand(h.cards...)
}
