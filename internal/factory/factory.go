package factory

import (
	"io"
	"log/slog"

	"github.com/sammollineaux/three-trios/internal/dependencies/clock"
	"github.com/sammollineaux/three-trios/internal/dependencies/random"
	"github.com/sammollineaux/three-trios/internal/services/bot"
	"github.com/sammollineaux/three-trios/internal/services/game"
	"github.com/sammollineaux/three-trios/internal/storage"
	"github.com/sammollineaux/three-trios/internal/storage/memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	GameController *game.Controller
	Strategies     bot.Registry
	BotService     *bot.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Seed makes shuffles and the random strategy reproducible (optional)
	// If nil, crypto/rand is used
	Seed *uint64
	// LuaScript is the path of a Lua strategy to register as "lua" (optional)
	LuaScript string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	strategies := bot.DefaultStrategies(rnd)
	if cfg.LuaScript != "" {
		lua, err := bot.LoadLuaStrategy(cfg.LuaScript)
		if err != nil {
			return nil, err
		}
		strategies.Register(lua)
		logger.Debug("lua strategy loaded", slog.String("path", cfg.LuaScript))
	}

	return newWithDependencies(memory.New(), clk, rnd, strategies, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, strategies bot.Registry, logger *slog.Logger) *App {
	gameController := game.NewController(store, clk, logger)
	botService := bot.NewService(gameController, strategies, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		GameController: gameController,
		Strategies:     strategies,
		BotService:     botService,
	}
}
