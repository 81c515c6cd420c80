package storage

import (
	"context"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
)

// Storage defines the interface for keeping game sessions
type Storage interface {
	// Game record operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Engine operations. The engine holds the board, hands and turn for the
	// game record with the same ID.
	SaveEngine(ctx context.Context, id model.GameID, engine *rules.Engine) error
	GetEngine(ctx context.Context, id model.GameID) (*rules.Engine, error)
}
