// Package session owns one running simulation: its board, metric history,
// recurring-step handle and UI state.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"cellsim/internal/core"
	"cellsim/internal/series"
)

var (
	// ErrNoBoard is returned when an operation needs a generated board.
	ErrNoBoard = errors.New("no board generated")
	// ErrRunning is returned for manual operations while a run is armed.
	ErrRunning = errors.New("simulation is running")
	// ErrNotEditable is returned when cells are toggled outside the
	// Generated state.
	ErrNotEditable = errors.New("board is not editable")
)

// State is the application state shown by the menus.
type State uint8

const (
	// StateSettings means the rule is being edited and no board exists yet.
	StateSettings State = iota
	// StateGenerated means a fresh board exists and cells may be toggled.
	StateGenerated
	// StateRunning means steps are scheduled by the repeater.
	StateRunning
	// StateStopped means a run was paused.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateSettings:
		return "settings"
	case StateGenerated:
		return "generated"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Options configures a Session.
type Options struct {
	// Window is the number of visible chart points; 0 uses the default.
	Window int
	Logger *slog.Logger
}

// Session is the explicit simulation context. It is not safe for
// concurrent use; one loop owns it.
type Session struct {
	sim    core.Sim
	series *series.Buffer
	timer  *core.Repeater
	state  State
	seed   int64
	window int
	base   *slog.Logger
	log    *slog.Logger

	observers []func(series.Sample)
}

// New wraps sim in a session in the Settings state.
func New(sim core.Sim, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		sim:    sim,
		series: series.New(),
		timer:  core.NewRepeater(),
		window: opts.Window,
		base:   log,
		log:    log.With("sim", sim.Name()),
	}
}

// Sim exposes the wrapped simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Seed returns the seed of the last generated board.
func (s *Session) Seed() int64 { return s.seed }

// Series exposes the metric history.
func (s *Session) Series() *series.Buffer { return s.series }

// Running reports whether a recurring step is armed.
func (s *Session) Running() bool { return s.timer.Armed() }

// NextDue returns when the armed repeater may next fire.
func (s *Session) NextDue() time.Time { return s.timer.Next() }

// OnSample registers fn to receive every sample appended to the series.
func (s *Session) OnSample(fn func(series.Sample)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Snapshot returns a copy of the current board.
func (s *Session) Snapshot() core.Snapshot { return s.sim.Grid().Snapshot() }

// Metric returns the current scalar metric.
func (s *Session) Metric() float64 { return s.sim.Metric() }

// Window returns the visible part of the metric history.
func (s *Session) Window() series.Window { return s.series.Windowed(s.window) }

// Configure replaces the simulation. It is only allowed in Settings.
func (s *Session) Configure(sim core.Sim) error {
	if s.state != StateSettings {
		return fmt.Errorf("configure in state %s: %w", s.state, ErrNotEditable)
	}
	s.sim = sim
	s.log = s.base.With("sim", sim.Name())
	s.series.Reset()
	return nil
}

// Generate cancels any run, randomizes the board with seed and restarts the
// metric history with the initial value.
func (s *Session) Generate(seed int64) {
	s.timer.Cancel()
	s.seed = seed
	s.sim.Reset(seed)
	s.restartSeries()
	s.setState(StateGenerated)
}

// Regenerate repeats Generate with the last seed.
func (s *Session) Regenerate() { s.Generate(s.seed) }

// Edit returns to Settings from Generated or Stopped.
func (s *Session) Edit() error {
	if s.state == StateRunning {
		return fmt.Errorf("edit: %w", ErrRunning)
	}
	s.setState(StateSettings)
	return nil
}

// Run arms the recurring step at now, replacing any previous schedule.
func (s *Session) Run(now time.Time) error {
	if s.state == StateSettings {
		return fmt.Errorf("run: %w", ErrNoBoard)
	}
	mode, interval := s.sim.Pacing()
	s.timer.Arm(mode, interval, now)
	s.log.Debug("run armed", "interval", interval, "generation", s.timer.Generation())
	s.setState(StateRunning)
	return nil
}

// Stop cancels the recurring step. Stopping an idle session is a no-op.
func (s *Session) Stop() {
	if !s.timer.Armed() {
		return
	}
	s.timer.Cancel()
	s.log.Debug("run cancelled")
	s.setState(StateStopped)
}

// Tick runs one step if the armed repeater is due at now.
func (s *Session) Tick(now time.Time) (bool, error) {
	if !s.timer.Due(now) {
		return false, nil
	}
	if _, err := s.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// Step performs a single manual step.
func (s *Session) Step() (core.Snapshot, float64, error) {
	switch s.state {
	case StateSettings:
		return core.Snapshot{}, 0, fmt.Errorf("step: %w", ErrNoBoard)
	case StateRunning:
		return core.Snapshot{}, 0, fmt.Errorf("step: %w", ErrRunning)
	}
	m, err := s.advance()
	if err != nil {
		return core.Snapshot{}, 0, err
	}
	return s.Snapshot(), m, nil
}

// Toggle flips one cell of a freshly generated board and restarts the
// history from the edited board.
func (s *Session) Toggle(x, y int) error {
	if s.state != StateGenerated {
		return fmt.Errorf("toggle in state %s: %w", s.state, ErrNotEditable)
	}
	if err := s.sim.Toggle(x, y); err != nil {
		return err
	}
	s.restartSeries()
	return nil
}

// ToggleAtPixel maps a pointer position to a cell by floor(pixel/cellSize).
func (s *Session) ToggleAtPixel(px, py float64, cellSize float64) error {
	x, y, err := CellAt(px, py, cellSize, s.sim.Size().W)
	if err != nil {
		return err
	}
	return s.Toggle(x, y)
}

// Resize cancels any run and replaces the board with an inactive one of the
// new side. The history restarts from the blank board.
func (s *Session) Resize(side int) error {
	if err := s.sim.Resize(side); err != nil {
		return err
	}
	s.timer.Cancel()
	s.restartSeries()
	s.setState(StateGenerated)
	return nil
}

// CellAt converts a pixel position to cell coordinates.
func CellAt(px, py, cellSize float64, side int) (int, int, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return 0, 0, fmt.Errorf("%w: cell size %v", core.ErrOutOfRange, cellSize)
	}
	if !finite(px) || !finite(py) {
		return 0, 0, fmt.Errorf("%w: pixel (%v,%v)", core.ErrOutOfRange, px, py)
	}
	x := int(math.Floor(px / cellSize))
	y := int(math.Floor(py / cellSize))
	if px < 0 || py < 0 || x >= side || y >= side {
		return 0, 0, fmt.Errorf("%w: pixel (%v,%v) maps to (%d,%d) on side %d", core.ErrOutOfRange, px, py, x, y, side)
	}
	return x, y, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (s *Session) advance() (float64, error) {
	if s.state == StateSettings {
		return 0, fmt.Errorf("advance: %w", ErrNoBoard)
	}
	s.sim.Step()
	m := s.sim.Metric()
	s.record(m)
	return m, nil
}

func (s *Session) restartSeries() {
	s.series.Reset()
	s.record(s.sim.Metric())
}

func (s *Session) record(v float64) {
	sample := s.series.Append(v)
	for _, fn := range s.observers {
		fn(sample)
	}
}

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	s.log.Debug("session state", "from", s.state, "to", next)
	s.state = next
}
