package model

// TurnResult describes one applied placement and its captures
type TurnResult struct {
	Color    PlayerColor
	Card     Card
	Position Position
	Flipped  []Position // Neighbours captured, in resolution order
	GameOver bool
}
