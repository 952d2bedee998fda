package ising

import (
	"fmt"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/core"
	prng "cellsim/pkg/core"
)

const (
	spinDown int8 = -1
	spinUp   int8 = 1
)

// Config holds a validated Ising setup.
type Config struct {
	Side   int
	Params Params
	FPS    int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Side: 256, Params: DefaultParams(), FPS: 60}
}

// FromConfig validates the ising section of the application config.
func FromConfig(c config.IsingConfig) (Config, error) {
	out := Config{Side: c.Side, Params: ParamsFromConfig(c), FPS: c.FPS}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks the side, the physical parameters and the frame rate.
func (c Config) Validate() error {
	if c.Side <= 0 {
		return fmt.Errorf("%w: side %d", core.ErrInvalidSize, c.Side)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be positive", core.ErrInvalidRuleConfig, c.FPS)
	}
	return c.Params.Validate()
}

// Ising is a square spin lattice with periodic boundaries.
type Ising struct {
	cfg  Config
	rule Rule
	cur  *core.Grid
	nxt  *core.Grid
	rng  *prng.RNG
	mag  float64
}

// New returns a lattice with every spin down.
func New(cfg Config) (*Ising, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cur, err := core.NewFilledGrid(cfg.Side, spinDown)
	if err != nil {
		return nil, err
	}
	nxt, _ := core.NewFilledGrid(cfg.Side, spinDown)
	return &Ising{cfg: cfg, rule: cfg.Params.Rule(), cur: cur, nxt: nxt, rng: prng.NewRNG(0), mag: -1}, nil
}

// Name identifies the simulation.
func (s *Ising) Name() string { return "ising" }

// Size returns the lattice dimensions.
func (s *Ising) Size() core.Size { return s.cur.Size() }

// Grid exposes the current spins.
func (s *Ising) Grid() *core.Grid { return s.cur }

// Params returns the active physical parameters.
func (s *Ising) Params() Params { return s.cfg.Params }

// Rule returns the active update rule.
func (s *Ising) Rule() Rule { return s.rule }

// Reset sets each spin to +1 or -1 with probability 1/2.
func (s *Ising) Reset(seed int64) {
	s.rng = prng.NewRNG(seed)
	cells := s.cur.Cells()
	for i := range cells {
		if s.rng.Bool() {
			cells[i] = spinUp
		} else {
			cells[i] = spinDown
		}
	}
	s.mag = s.cur.Mean()
}

// Step updates every spin from the previous lattice and recomputes the
// magnetization.
func (s *Ising) Step() {
	core.StepInto(s.nxt, s.cur, s.rule, s.rng.Source())
	s.cur, s.nxt = s.nxt, s.cur
	s.mag = s.cur.Mean()
}

// Metric returns the magnetization, the mean spin.
func (s *Ising) Metric() float64 { return s.mag }

// MetricRange is the magnetization domain.
func (s *Ising) MetricRange() (float64, float64) { return -1, 1 }

// Toggle flips the spin at (x, y).
func (s *Ising) Toggle(x, y int) error {
	v, err := s.cur.At(x, y)
	if err != nil {
		return err
	}
	if err := s.cur.Set(x, y, -v); err != nil {
		return err
	}
	s.mag = s.cur.Mean()
	return nil
}

// Resize discards the lattice and allocates one with every spin down.
func (s *Ising) Resize(side int) error {
	if err := s.cur.Resize(side); err != nil {
		return err
	}
	_ = s.nxt.Resize(side)
	s.cur.Fill(spinDown)
	s.nxt.Fill(spinDown)
	s.cfg.Side = side
	s.mag = -1
	return nil
}

// Pacing throttles steps to the configured frame rate.
func (s *Ising) Pacing() (core.RepeatMode, time.Duration) {
	return core.RepeatFrame, core.IntervalForTPS(s.cfg.FPS)
}

// SetParams replaces the physical parameters; the next step uses them.
func (s *Ising) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.cfg.Params = p
	s.rule = p.Rule()
	return nil
}

// SetFloatParameter updates one physical parameter by key.
func (s *Ising) SetFloatParameter(key string, value float64) error {
	p := s.cfg.Params
	switch key {
	case "temperature":
		p.Temperature = value
	case "boltzmann":
		p.Boltzmann = value
	case "coupling":
		p.Coupling = value
	case "field":
		p.Field = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", core.ErrInvalidRuleConfig, key)
	}
	return s.SetParams(p)
}

// ParameterControls lists the parameters adjustable while running.
func (s *Ising) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "temperature", Label: "Temperature", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "coupling", Label: "Coupling J", Type: core.ParamTypeFloat, Step: 0.1},
		{Key: "field", Label: "Field h", Type: core.ParamTypeFloat, Step: 0.1},
	}
}

// Parameters reports the model settings and current magnetization.
func (s *Ising) Parameters() core.ParameterSnapshot {
	p := s.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Model",
			Params: []core.Parameter{
				core.FloatParam("temperature", "Temperature", p.Temperature),
				core.FloatParam("beta", "1/kT", p.InverseTemperature()),
				core.FloatParam("coupling", "Coupling J", p.Coupling),
				core.FloatParam("field", "Field h", p.Field),
			},
		},
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("side", "Side", s.cur.Side()),
				core.IntParam("fps", "Steps per second", s.cfg.FPS),
				core.FloatParam("magnetization", "Magnetization", s.mag),
			},
		},
	}}
}

func init() {
	core.Register("ising", func(cfg *config.Config) (core.Sim, error) {
		c, err := FromConfig(cfg.Ising)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
