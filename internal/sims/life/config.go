package life

import (
	"fmt"
	"math"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/core"
)

// Config holds a validated Life setup.
type Config struct {
	Side         int
	Rule         Rule
	AliveAtStart float64 // percent
	Interval     time.Duration
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Side: 50, Rule: Conway(), AliveAtStart: 15, Interval: 250 * time.Millisecond}
}

// FromConfig validates the life section of the application config.
// Malformed input is an error rather than a silent fallback.
func FromConfig(c config.LifeConfig) (Config, error) {
	stay, err := NewCountSet(c.Stay)
	if err != nil {
		return Config{}, fmt.Errorf("stay: %w", err)
	}
	born, err := NewCountSet(c.Born)
	if err != nil {
		return Config{}, fmt.Errorf("born: %w", err)
	}
	out := Config{
		Side:         c.Side,
		Rule:         Rule{Stay: stay, Born: born},
		AliveAtStart: c.AliveAtStart,
		Interval:     time.Duration(c.IntervalMS) * time.Millisecond,
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks the rule sets, the alive fraction and the side.
func (c Config) Validate() error {
	if c.Side <= 0 {
		return fmt.Errorf("%w: side %d", core.ErrInvalidSize, c.Side)
	}
	if math.IsNaN(c.AliveAtStart) || c.AliveAtStart < 0 || c.AliveAtStart > 100 {
		return fmt.Errorf("%w: alive at start %v%% outside [0,100]", core.ErrInvalidRuleConfig, c.AliveAtStart)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: negative redraw interval %v", core.ErrInvalidRuleConfig, c.Interval)
	}
	return c.Rule.Validate()
}

// AliveCount is the number of cells set alive by randomization:
// ceil(percent * side^2 / 100).
func AliveCount(percent float64, side int) int {
	total := side * side
	n := int(math.Ceil(percent * float64(total) / 100))
	if n > total {
		n = total
	}
	if n < 0 {
		n = 0
	}
	return n
}
