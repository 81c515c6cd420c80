package cli

import (
	"fmt"
	"os"

	"github.com/sammollineaux/three-trios/internal/model"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	Grid    string
	Cards   string
	Output  string
	Verbose bool

	Red       string
	Blue      string
	Seed      uint64
	Seeded    bool
	Shuffle   bool
	LuaScript string
	Games     int
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Grid:    os.Getenv("THREETRIOS_GRID"),
		Cards:   os.Getenv("THREETRIOS_CARDS"),
		Output:  getEnvOrDefault("THREETRIOS_OUTPUT", OutputText),
		Verbose: false,
		Games:   100,
	}
}

// Validate checks settings shared by every command
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("output format %q must be text or json: %w", c.Output, model.ErrInvalidConfiguration)
	}
	return nil
}

// RequireFiles checks that both configuration files were given
func (c *Config) RequireFiles() error {
	if c.Grid == "" {
		return fmt.Errorf("--grid is required (env: THREETRIOS_GRID): %w", model.ErrInvalidConfiguration)
	}
	if c.Cards == "" {
		return fmt.Errorf("--cards is required (env: THREETRIOS_CARDS): %w", model.ErrInvalidConfiguration)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
