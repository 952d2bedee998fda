package session

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"cellsim/internal/config"
	"cellsim/internal/core"
)

// Settings is the configuration edited while the session is in the
// Settings state. Edits are not validated; Build is.
type Settings struct {
	cfg *config.Config
}

// NewSettings edits a copy of cfg.
func NewSettings(cfg *config.Config) *Settings {
	return &Settings{cfg: cfg.Clone()}
}

// Config returns a copy of the edited configuration.
func (s *Settings) Config() *config.Config { return s.cfg.Clone() }

// Sim is the name of the simulation Build will construct.
func (s *Settings) Sim() string { return s.cfg.Run.Sim }

// Build validates the settings and constructs the simulation.
func (s *Settings) Build() (core.Sim, error) {
	return core.NewSim(s.cfg.Run.Sim, s.cfg)
}

// Set applies one dotted key=value edit. A value that does not parse
// leaves the settings unchanged.
func (s *Settings) Set(key, value string) error {
	next := s.cfg.Clone()
	if err := config.ApplyOverride(next, key, value); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// CycleSim switches to the next registered simulation.
func (s *Settings) CycleSim() string {
	names := core.SimNames()
	if len(names) == 0 {
		return s.cfg.Run.Sim
	}
	i := slices.Index(names, s.cfg.Run.Sim)
	s.cfg.Run.Sim = names[(i+1)%len(names)]
	return s.cfg.Run.Sim
}

// ToggleCount adds n to or removes it from the Life "stay" or "born" set.
func (s *Settings) ToggleCount(set string, n int) error {
	if n < 0 || n > 8 {
		return fmt.Errorf("%w: neighbour count %d", core.ErrOutOfRange, n)
	}
	var counts []int
	switch set {
	case "stay":
		counts = slices.Clone(s.cfg.Life.Stay)
	case "born":
		counts = slices.Clone(s.cfg.Life.Born)
	default:
		return fmt.Errorf("%w: unknown count set %q", core.ErrOutOfRange, set)
	}
	if i := slices.Index(counts, n); i >= 0 {
		counts = slices.Delete(counts, i, i+1)
	} else {
		counts = append(counts, n)
		slices.Sort(counts)
	}
	return s.Set("life."+set, joinCounts(counts))
}

// SetSide records a board side for the current simulation.
func (s *Settings) SetSide(side int) error {
	return s.Set(s.cfg.Run.Sim+".side", strconv.Itoa(side))
}

// ParameterControls lists the numeric settings of the selected simulation.
func (s *Settings) ParameterControls() []core.ParameterControl {
	if s.cfg.Run.Sim == "ising" {
		return []core.ParameterControl{
			{Key: "ising.side", Label: "Side", Type: core.ParamTypeFloat, Step: 16, Min: 1, HasMin: true},
			{Key: "ising.temperature", Label: "Temperature", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
			{Key: "ising.coupling", Label: "Coupling J", Type: core.ParamTypeFloat, Step: 0.1},
			{Key: "ising.field", Label: "Field h", Type: core.ParamTypeFloat, Step: 0.1},
			{Key: "ising.fps", Label: "Steps per second", Type: core.ParamTypeFloat, Step: 5, Min: 1, HasMin: true},
		}
	}
	return []core.ParameterControl{
		{Key: "life.side", Label: "Board size", Type: core.ParamTypeFloat, Step: 10, Min: 1, HasMin: true},
		{Key: "life.alive_at_start", Label: "Alive at start %", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: "life.interval_ms", Label: "Redraw interval ms", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true},
	}
}

var integerSettings = map[string]bool{
	"life.side":        true,
	"life.interval_ms": true,
	"ising.side":       true,
	"ising.fps":        true,
}

// SetFloatParameter sets a numeric setting, clamped to its control bounds.
func (s *Settings) SetFloatParameter(key string, value float64) error {
	i := slices.IndexFunc(s.ParameterControls(), func(c core.ParameterControl) bool { return c.Key == key })
	if i < 0 {
		return fmt.Errorf("%w: no setting %q for %s", core.ErrOutOfRange, key, s.cfg.Run.Sim)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s is %v", core.ErrOutOfRange, key, value)
	}
	value = s.ParameterControls()[i].Clamp(value)
	if integerSettings[key] {
		return s.Set(key, strconv.Itoa(int(math.Round(value))))
	}
	return s.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// Parameters reports the pending settings.
func (s *Settings) Parameters() core.ParameterSnapshot {
	run := core.ParameterGroup{
		Name:   "Run",
		Params: []core.Parameter{{Key: "run.sim", Label: "Simulation (Tab)", Type: core.ParamTypeSet, Value: s.cfg.Run.Sim}},
	}
	if s.cfg.Run.Sim == "ising" {
		c := s.cfg.Ising
		return core.ParameterSnapshot{Groups: []core.ParameterGroup{run, {
			Name: "Model",
			Params: []core.Parameter{
				core.IntParam("ising.side", "Side", c.Side),
				core.FloatParam("ising.temperature", "Temperature", c.Temperature),
				core.FloatParam("ising.coupling", "Coupling J", c.Coupling),
				core.FloatParam("ising.field", "Field h", c.Field),
				core.IntParam("ising.fps", "Steps per second", c.FPS),
			},
		}}}
	}
	c := s.cfg.Life
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{run, {
		Name: "Rule",
		Params: []core.Parameter{
			core.SetParam("life.stay", "Stay (shift+0-8)", displayCounts(c.Stay)),
			core.SetParam("life.born", "Born (0-8)", displayCounts(c.Born)),
			core.FloatParam("life.alive_at_start", "Alive at start %", c.AliveAtStart),
		},
	}, {
		Name: "Board",
		Params: []core.Parameter{
			core.IntParam("life.side", "Board size", c.Side),
			core.IntParam("life.interval_ms", "Redraw interval ms", c.IntervalMS),
		},
	}}}
}

func joinCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func displayCounts(counts []int) string {
	if len(counts) == 0 {
		return "none"
	}
	var b strings.Builder
	for _, n := range counts {
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
