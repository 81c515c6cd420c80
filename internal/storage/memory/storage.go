package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sammollineaux/three-trios/internal/model"
	"github.com/sammollineaux/three-trios/internal/rules"
	"github.com/sammollineaux/three-trios/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	engines map[model.GameID]*rules.Engine
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:   make(map[model.GameID]*model.Game),
		engines: make(map[model.GameID]*rules.Engine),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

// SaveGame stores a copy of the record, so later changes by the caller
// are not visible until saved again
func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = copyGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

// ListGames returns every stored game, oldest first
func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, copyGame(g))
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}

// DeleteGame removes the record and its engine
func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	delete(s.engines, id)
	return nil
}

// Engine operations

func (s *Storage) SaveEngine(ctx context.Context, id model.GameID, engine *rules.Engine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[id] = engine
	return nil
}

// GetEngine returns the live engine; it does its own locking
func (s *Storage) GetEngine(ctx context.Context, id model.GameID) (*rules.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.engines[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return engine, nil
}

func copyGame(g *model.Game) *model.Game {
	cp := *g
	cp.Seats = make(map[model.PlayerColor]model.Seat, len(g.Seats))
	for color, seat := range g.Seats {
		cp.Seats[color] = seat
	}
	if g.Winner != nil {
		winner := *g.Winner
		cp.Winner = &winner
	}
	return &cp
}
