package model

// Bot strategy constants
const (
	StrategyFlipMost   = "flipmost"
	StrategyBestCorner = "bestcorner"
	StrategyRandom     = "random"
	StrategyLua        = "lua"
)

// StrategyDisplayName returns a human-readable label for a seat controller
func StrategyDisplayName(controller string) string {
	switch controller {
	case StrategyFlipMost:
		return "Flip Most"
	case StrategyBestCorner:
		return "Best Corner"
	case StrategyRandom:
		return "Random"
	case StrategyLua:
		return "Lua Script"
	case ControllerHuman:
		return "Human"
	default:
		return controller
	}
}

// ValidStrategies returns all built-in strategy names
func ValidStrategies() []string {
	return []string{StrategyFlipMost, StrategyBestCorner, StrategyRandom}
}
