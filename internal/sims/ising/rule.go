package ising

import (
	"fmt"
	"math"
	"math/rand/v2"

	"cellsim/internal/config"
	"cellsim/internal/core"
)

// Params are the physical parameters of the model.
type Params struct {
	Temperature float64
	Boltzmann   float64
	Coupling    float64
	Field       float64
}

// DefaultParams is close to the 2D critical temperature with k=J=1.
func DefaultParams() Params {
	return Params{Temperature: 2.27, Boltzmann: 1, Coupling: 1}
}

// ParamsFromConfig copies the physical fields of the ising section.
func ParamsFromConfig(c config.IsingConfig) Params {
	return Params{Temperature: c.Temperature, Boltzmann: c.Boltzmann, Coupling: c.Coupling, Field: c.Field}
}

// Validate rejects negative temperatures, non-positive k and non-finite input.
func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"temperature": p.Temperature,
		"boltzmann":   p.Boltzmann,
		"coupling":    p.Coupling,
		"field":       p.Field,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", core.ErrInvalidRuleConfig, name, v)
		}
	}
	if p.Temperature < 0 {
		return fmt.Errorf("%w: temperature %v below zero", core.ErrInvalidRuleConfig, p.Temperature)
	}
	if p.Boltzmann <= 0 {
		return fmt.Errorf("%w: boltzmann constant %v must be positive", core.ErrInvalidRuleConfig, p.Boltzmann)
	}
	return nil
}

// InverseTemperature is 1/(k*T); +Inf at T=0.
func (p Params) InverseTemperature() float64 {
	if p.Temperature == 0 {
		return math.Inf(1)
	}
	return 1 / (p.Boltzmann * p.Temperature)
}

// Rule returns the update rule for these parameters.
func (p Params) Rule() Rule {
	return Rule{Beta: p.InverseTemperature(), Coupling: p.Coupling, Field: p.Field}
}

// UpProbability is the probability that a spin in local field h becomes +1:
// 1/(1+exp(-2*beta*h)). At beta=+Inf it is the step function of h.
func UpProbability(beta, h float64) float64 {
	if math.IsInf(beta, 1) {
		if h > 0 {
			return 1
		}
		return 0
	}
	return 1 / (1 + math.Exp(-2*beta*h))
}

// NextSpin picks the new spin for local field h. The current spin does not
// enter the probability. At beta=+Inf the draw u is ignored and the result
// is the sign of h, with h=0 giving -1.
func NextSpin(h, beta, u float64) int8 {
	if math.IsInf(beta, 1) {
		if h > 0 {
			return 1
		}
		return -1
	}
	if u <= UpProbability(beta, h) {
		return 1
	}
	return -1
}

// Rule is the heat-bath (Glauber) spin update.
type Rule struct {
	Beta     float64
	Coupling float64
	Field    float64
}

// LocalField folds coupling and external field into the neighbour spin sum.
func (r Rule) LocalField(neighborSum int) float64 {
	return float64(neighborSum)*r.Coupling + r.Field
}

// NextValue applies the rule to one cell given its draw u in [0, 1).
func (r Rule) NextValue(neighborSum int, u float64) int8 {
	return NextSpin(r.LocalField(neighborSum), r.Beta, u)
}

// Deterministic reports whether the rule is the zero-temperature limit.
func (r Rule) Deterministic() bool { return math.IsInf(r.Beta, 1) }

// Neighborhood implements core.Rule.
func (r Rule) Neighborhood() core.Neighborhood { return core.VonNeumann }

// Next implements core.Rule. Each cell draws its own number unless the rule
// is deterministic.
func (r Rule) Next(_ int8, aggregate int, rng *rand.Rand) int8 {
	if r.Deterministic() {
		return r.NextValue(aggregate, 0)
	}
	return r.NextValue(aggregate, rng.Float64())
}
