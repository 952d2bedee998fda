package core

import (
	"fmt"
	"sort"
	"time"

	"cellsim/internal/config"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	// Reset randomizes the board using the provided seed.
	Reset(seed int64)
	// Step advances one generation.
	Step()
	Grid() *Grid
	// Metric is the scalar plotted per step: density or magnetization.
	Metric() float64
	// MetricRange is the value domain of Metric, used for chart scaling.
	MetricRange() (lo, hi float64)
	Toggle(x, y int) error
	Resize(side int) error
	// Pacing reports how a run of this sim should be scheduled.
	Pacing() (RepeatMode, time.Duration)
}

// Factory constructs a Sim from the application configuration.
type Factory func(cfg *config.Config) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// SimNames lists registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSim builds the named simulation.
func NewSim(name string, cfg *config.Config) (Sim, error) {
	factory, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", name, SimNames())
	}
	return factory(cfg)
}
