package life

import (
	"fmt"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/core"
	prng "cellsim/pkg/core"
)

// Life implements Life-like automata with toroidal wrapping.
type Life struct {
	cfg Config
	cur *core.Grid
	nxt *core.Grid
	rng *prng.RNG
}

// New returns a Life simulation with an all-dead board.
func New(cfg Config) (*Life, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cur, err := core.NewGrid(cfg.Side)
	if err != nil {
		return nil, err
	}
	nxt, _ := core.NewGrid(cfg.Side)
	return &Life{cfg: cfg, cur: cur, nxt: nxt, rng: prng.NewRNG(0)}, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.cur.Size() }

// Grid exposes the current generation.
func (l *Life) Grid() *core.Grid { return l.cur }

// Config returns the active configuration.
func (l *Life) Config() Config { return l.cfg }

// Rule returns the active rule.
func (l *Life) Rule() Rule { return l.cfg.Rule }

// Reset clears the board and sets AliveCount distinct cells alive, chosen
// uniformly without replacement.
func (l *Life) Reset(seed int64) {
	l.rng = prng.NewRNG(seed)
	l.cur.Clear()
	cells := l.cur.Cells()
	for _, idx := range l.rng.Sample(AliveCount(l.cfg.AliveAtStart, l.cur.Side()), len(cells)) {
		cells[idx] = 1
	}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	core.StepInto(l.nxt, l.cur, l.cfg.Rule, nil)
	l.cur, l.nxt = l.nxt, l.cur
}

// Metric returns the density of live cells.
func (l *Life) Metric() float64 { return l.cur.Mean() }

// MetricRange is the density domain.
func (l *Life) MetricRange() (float64, float64) { return 0, 1 }

// Toggle flips the cell at (x, y).
func (l *Life) Toggle(x, y int) error {
	v, err := l.cur.At(x, y)
	if err != nil {
		return err
	}
	return l.cur.Set(x, y, 1-v)
}

// Resize discards the board and allocates an all-dead one.
func (l *Life) Resize(side int) error {
	if err := l.cur.Resize(side); err != nil {
		return err
	}
	_ = l.nxt.Resize(side)
	l.cfg.Side = side
	return nil
}

// Pacing replays steps at the configured redraw interval.
func (l *Life) Pacing() (core.RepeatMode, time.Duration) {
	return core.RepeatInterval, l.cfg.Interval
}

// Parameters reports the rule settings and current density.
func (l *Life) Parameters() core.ParameterSnapshot {
	side := l.cur.Side()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.SetParam("stay", "Stay", l.cfg.Rule.Stay.String()),
				core.SetParam("born", "Born", l.cfg.Rule.Born.String()),
				core.FloatParam("alive_at_start", "Alive at start %", l.cfg.AliveAtStart),
			},
		},
		{
			Name: "Board",
			Params: []core.Parameter{
				{Key: "side", Label: "Board size", Type: core.ParamTypeInt, Value: fmt.Sprintf("%dx%d", side, side)},
				core.IntParam("interval_ms", "Redraw interval ms", int(l.cfg.Interval/time.Millisecond)),
				{Key: "density", Label: "Current density", Type: core.ParamTypeFloat, Value: fmt.Sprintf("%.0f %%", l.Metric()*100)},
			},
		},
	}}
}

func init() {
	core.Register("life", func(cfg *config.Config) (core.Sim, error) {
		c, err := FromConfig(cfg.Life)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
