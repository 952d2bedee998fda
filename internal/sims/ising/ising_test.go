package ising

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/core"
)

func TestInverseTemperature(t *testing.T) {
	p := Params{Temperature: 2, Boltzmann: 0.5, Coupling: 1}
	if got := p.InverseTemperature(); got != 1 {
		t.Fatalf("beta = %v, want 1", got)
	}
	p.Temperature = 0
	if got := p.InverseTemperature(); !math.IsInf(got, 1) {
		t.Fatalf("beta at T=0 = %v, want +Inf", got)
	}
}

func TestZeroTemperatureIsDeterministic(t *testing.T) {
	beta := math.Inf(1)
	for _, u := range []float64{0, 0.25, 0.5, 0.999999} {
		if got := NextSpin(2.0, beta, u); got != 1 {
			t.Fatalf("h=2, u=%v: got %d, want +1", u, got)
		}
		if got := NextSpin(-2.0, beta, u); got != -1 {
			t.Fatalf("h=-2, u=%v: got %d, want -1", u, got)
		}
		if got := NextSpin(0, beta, u); got != -1 {
			t.Fatalf("h=0, u=%v: got %d, want -1", u, got)
		}
	}
}

func TestInfiniteTemperatureIsFair(t *testing.T) {
	for _, h := range []float64{-8, -1, 0, 0.5, 4} {
		if got := UpProbability(0, h); got != 0.5 {
			t.Fatalf("p(beta=0, h=%v) = %v, want 0.5", h, got)
		}
	}
	if NextSpin(3, 0, 0.5) != 1 || NextSpin(3, 0, 0.5000001) != -1 {
		t.Fatal("threshold at beta=0 should sit at u=0.5 with u<=p giving +1")
	}
}

func TestUpProbability(t *testing.T) {
	tests := []struct {
		beta, h, want float64
	}{
		{1, 0, 0.5},
		{1, 1, 1 / (1 + math.Exp(-2))},
		{0.5, -2, 1 / (1 + math.Exp(2))},
		{1e6, 1, 1},
		{1e6, -1, 0},
	}
	for _, tt := range tests {
		if got := UpProbability(tt.beta, tt.h); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("UpProbability(%v, %v) = %v, want %v", tt.beta, tt.h, got, tt.want)
		}
	}
}

func TestFieldAddedBeforeNonlinearity(t *testing.T) {
	r := Params{Temperature: 0, Boltzmann: 1, Coupling: 1, Field: 3}.Rule()
	// Neighbours sum to -2 but the field tips the local field positive.
	if got := r.NextValue(-2, 0.9); got != 1 {
		t.Fatalf("got %d, want +1", got)
	}
	if got := r.LocalField(-2); got != 1 {
		t.Fatalf("local field = %v, want 1", got)
	}
}

func newLattice(t *testing.T, side int, p Params) *Ising {
	t.Helper()
	s, err := New(Config{Side: side, Params: p, FPS: 60})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestTwoByTwoAllUpStaysUp(t *testing.T) {
	s := newLattice(t, 2, Params{Temperature: 0, Boltzmann: 1, Coupling: 1})
	s.Grid().Fill(1)
	// Each cell reaches its two distinct neighbours through both directions
	// of each axis.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := s.Grid().VonNeumannSum(x, y); got != 4 {
				t.Fatalf("neighbour sum at (%d,%d) = %d, want 4", x, y, got)
			}
		}
	}
	s.Step()
	for i, v := range s.Grid().Cells() {
		if v != 1 {
			t.Fatalf("cell %d = %d, want +1", i, v)
		}
	}
	if s.Metric() != 1 {
		t.Fatalf("magnetization = %v, want 1", s.Metric())
	}
}

func TestStrongFieldAlignsAtZeroTemperature(t *testing.T) {
	s := newLattice(t, 16, Params{Temperature: 0, Boltzmann: 1, Coupling: 1, Field: 5})
	s.Reset(3)
	s.Step()
	if s.Metric() != 1 {
		t.Fatalf("magnetization = %v, want 1", s.Metric())
	}
}

func TestResetIsBalancedAndDeterministic(t *testing.T) {
	s := newLattice(t, 64, DefaultParams())
	s.Reset(11)
	for _, v := range s.Grid().Cells() {
		if v != 1 && v != -1 {
			t.Fatalf("spin %d is not ±1", v)
		}
	}
	if m := s.Metric(); math.Abs(m) > 0.1 {
		t.Fatalf("random start magnetization %v too far from 0", m)
	}
	first := append([]int8(nil), s.Grid().Cells()...)
	s.Step()
	s.Reset(11)
	if !slices.Equal(first, s.Grid().Cells()) {
		t.Fatal("Reset with the same seed is not deterministic")
	}
}

func TestHighTemperatureDisorders(t *testing.T) {
	s := newLattice(t, 64, Params{Temperature: 1e9, Boltzmann: 1, Coupling: 1})
	s.Grid().Fill(1)
	s.Step()
	if m := s.Metric(); math.Abs(m) > 0.1 {
		t.Fatalf("magnetization after hot step = %v, want near 0", m)
	}
}

func TestStepReadsPreviousGeneration(t *testing.T) {
	// A checkerboard at T=0 with J=1 flips entirely: every neighbour has the
	// opposite sign. An in-place scan would see already-flipped neighbours.
	s := newLattice(t, 4, Params{Temperature: 0, Boltzmann: 1, Coupling: 1})
	cells := s.Grid().Cells()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				cells[y*4+x] = 1
			} else {
				cells[y*4+x] = -1
			}
		}
	}
	before := append([]int8(nil), cells...)
	s.Step()
	for i, v := range s.Grid().Cells() {
		if v != -before[i] {
			t.Fatalf("cell %d = %d, want %d", i, v, -before[i])
		}
	}
}

func TestParamValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"negative temperature", Params{Temperature: -1, Boltzmann: 1}},
		{"zero boltzmann", Params{Temperature: 1, Boltzmann: 0}},
		{"nan field", Params{Temperature: 1, Boltzmann: 1, Field: math.NaN()}},
		{"inf coupling", Params{Temperature: 1, Boltzmann: 1, Coupling: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, core.ErrInvalidRuleConfig) {
				t.Fatalf("expected ErrInvalidRuleConfig, got %v", err)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"default", DefaultConfig(), nil},
		{"zero side", Config{Side: 0, Params: DefaultParams(), FPS: 60}, core.ErrInvalidSize},
		{"zero fps", Config{Side: 8, Params: DefaultParams(), FPS: 0}, core.ErrInvalidRuleConfig},
		{"negative fps", Config{Side: 8, Params: DefaultParams(), FPS: -5}, core.ErrInvalidRuleConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}

	c := config.Default().Ising
	c.FPS = 0
	if _, err := FromConfig(c); !errors.Is(err, core.ErrInvalidRuleConfig) {
		t.Fatalf("FromConfig with fps 0: %v", err)
	}
}

func TestSetFloatParameter(t *testing.T) {
	s := newLattice(t, 4, DefaultParams())
	if err := s.SetFloatParameter("temperature", 0); err != nil {
		t.Fatalf("SetFloatParameter: %v", err)
	}
	if !s.Rule().Deterministic() {
		t.Fatal("T=0 should switch to the deterministic rule")
	}
	if err := s.SetFloatParameter("temperature", -2); !errors.Is(err, core.ErrInvalidRuleConfig) {
		t.Fatalf("expected ErrInvalidRuleConfig, got %v", err)
	}
	if s.Params().Temperature != 0 {
		t.Fatal("rejected update must not change the parameters")
	}
	if err := s.SetFloatParameter("nope", 1); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestToggleResizeAndPacing(t *testing.T) {
	s := newLattice(t, 3, DefaultParams())
	if err := s.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Grid().At(1, 2); v != 1 {
		t.Fatalf("toggled spin = %d, want +1", v)
	}
	if err := s.Toggle(-1, 0); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := s.Resize(5); err != nil {
		t.Fatal(err)
	}
	if s.Grid().Sum() != -25 || s.Metric() != -1 {
		t.Fatalf("resized lattice should be all down, sum=%d", s.Grid().Sum())
	}
	mode, interval := s.Pacing()
	if mode != core.RepeatFrame || interval != time.Second/60 {
		t.Fatalf("pacing = %v %v", mode, interval)
	}
}

func TestRegisteredFactory(t *testing.T) {
	cfg := config.Default()
	cfg.Ising.Side = 8
	cfg.Ising.Temperature = 0
	sim, err := core.NewSim("ising", cfg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if sim.Size().W != 8 {
		t.Fatalf("side = %d", sim.Size().W)
	}
	if beta, _ := sim.(core.ParameterProvider).Parameters().Lookup("beta"); beta.Value != "+Inf" {
		t.Fatalf("beta parameter = %q, want +Inf", beta.Value)
	}
	cfg.Ising.Boltzmann = 0
	if _, err := core.NewSim("ising", cfg); !errors.Is(err, core.ErrInvalidRuleConfig) {
		t.Fatalf("expected ErrInvalidRuleConfig, got %v", err)
	}
}
