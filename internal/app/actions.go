package app

import (
	"log/slog"
	"time"

	"cellsim/internal/session"
)

// Action is a user command bound to a key.
type Action uint8

const (
	ActionRunStop Action = iota
	ActionStep
	ActionRegenerate
	ActionReseed
	ActionGenerate
	ActionEdit
	ActionWarmer
	ActionCooler
	ActionShrink
	ActionGrow
	ActionToggle
	ActionSwitchSim
)

var actionNames = [...]string{"run/stop", "step", "regenerate", "reseed", "generate", "edit", "warmer", "cooler", "shrink", "grow", "toggle", "switch sim"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Options sizes the window.
type Options struct {
	// BoardPixels is the side of the square board area; cells are scaled
	// to fill it.
	BoardPixels int
	PanelWidth  int
	ChartHeight int
	// ResizeStep is how many cells the bracket keys add or remove.
	ResizeStep int
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BoardPixels <= 0 {
		o.BoardPixels = 600
	}
	if o.PanelWidth < 0 {
		o.PanelWidth = 0
	} else if o.PanelWidth == 0 {
		o.PanelWidth = 280
	}
	if o.ChartHeight <= 0 {
		o.ChartHeight = 160
	}
	if o.ResizeStep <= 0 {
		o.ResizeStep = 10
	}
	return o
}

// CellSize is the pixel span of one cell when a board of side cells fills
// boardPixels.
func CellSize(boardPixels, side int) float64 {
	if side <= 0 {
		return 1
	}
	return float64(boardPixels) / float64(side)
}

// Adjuster nudges a named parameter of whatever the panel is showing; the
// HUD implements it.
type Adjuster interface {
	Adjust(key string, direction int)
	Rebind()
}

// Controller applies user commands to a session and the settings it is
// generated from.
type Controller struct {
	Session  *session.Session
	Settings *session.Settings
	// Panel may be nil.
	Panel      Adjuster
	ResizeStep int
}

// Apply executes a keyboard action.
func (c *Controller) Apply(a Action, now time.Time) error {
	s := c.Session
	switch a {
	case ActionRunStop:
		if s.Running() {
			s.Stop()
			return nil
		}
		return s.Run(now)
	case ActionStep:
		_, _, err := s.Step()
		return err
	case ActionRegenerate:
		if s.State() == session.StateSettings {
			return session.ErrNoBoard
		}
		s.Regenerate()
	case ActionReseed:
		if s.State() == session.StateSettings {
			return c.generate(now.UnixNano())
		}
		s.Generate(now.UnixNano())
	case ActionGenerate:
		if s.State() != session.StateSettings {
			return session.ErrNotEditable
		}
		return c.generate(s.Seed())
	case ActionEdit:
		if err := s.Edit(); err != nil {
			return err
		}
		c.rebind()
	case ActionSwitchSim:
		if s.State() != session.StateSettings {
			return session.ErrNotEditable
		}
		c.Settings.CycleSim()
		c.rebind()
	case ActionWarmer, ActionCooler:
		dir := 1
		if a == ActionCooler {
			dir = -1
		}
		key := "temperature"
		if s.State() == session.StateSettings {
			key = "ising.temperature"
		}
		if c.Panel != nil {
			c.Panel.Adjust(key, dir)
		}
	case ActionShrink, ActionGrow:
		return c.resize(a == ActionGrow)
	}
	return nil
}

// ToggleCount edits the Life stay or born set. Only allowed in Settings.
func (c *Controller) ToggleCount(set string, n int) error {
	if c.Session.State() != session.StateSettings {
		return session.ErrNotEditable
	}
	return c.Settings.ToggleCount(set, n)
}

// generate validates the settings, swaps the built sim into the session
// and randomizes it. Invalid settings keep the session in Settings.
func (c *Controller) generate(seed int64) error {
	sim, err := c.Settings.Build()
	if err != nil {
		return err
	}
	if err := c.Session.Configure(sim); err != nil {
		return err
	}
	c.Session.Generate(seed)
	c.rebind()
	return nil
}

func (c *Controller) resize(grow bool) error {
	step := c.ResizeStep
	if step <= 0 {
		step = 1
	}
	if !grow {
		step = -step
	}
	if c.Session.State() == session.StateSettings {
		side := c.Settings.Config().Life.Side
		if c.Settings.Sim() == "ising" {
			side = c.Settings.Config().Ising.Side
		}
		return c.Settings.SetSide(max(side+step, 1))
	}
	side := max(c.Session.Sim().Size().W+step, 1)
	if err := c.Session.Resize(side); err != nil {
		return err
	}
	if c.Settings.Sim() == c.Session.Sim().Name() {
		return c.Settings.SetSide(side)
	}
	return nil
}

func (c *Controller) rebind() {
	if c.Panel != nil {
		c.Panel.Rebind()
	}
}
