package bot

import (
	"fmt"
	"sort"

	"github.com/sammollineaux/three-trios/internal/dependencies/random"
	"github.com/sammollineaux/three-trios/internal/model"
)

// Registry maps strategy names to strategies
type Registry map[string]Strategy

// DefaultStrategies returns the built-in strategies keyed by name
func DefaultStrategies(rnd random.Random) Registry {
	r := Registry{}
	r.Register(NewFlipMostStrategy())
	r.Register(NewBestCornerStrategy())
	r.Register(NewRandomStrategy(rnd))
	return r
}

// Register adds or replaces a strategy under its own name
func (r Registry) Register(s Strategy) {
	r[s.Name()] = s
}

// Get looks up a strategy by name
func (r Registry) Get(name string) (Strategy, error) {
	s, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, model.ErrUnknownStrategy)
	}
	return s, nil
}

// Names returns the registered names in sorted order
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
