package ui

import (
	"testing"

	"cellsim/internal/core"
)

func TestNextValue(t *testing.T) {
	ctrl := core.ParameterControl{Key: "temperature", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 1, HasMin: true, HasMax: true}
	tests := []struct {
		name      string
		current   float64
		direction int
		want      float64
		ok        bool
	}{
		{"up", 0.5, 1, 0.6, true},
		{"down", 0.5, -1, 0.4, true},
		{"clamped at max", 0.95, 1, 1, true},
		{"at max", 1, 1, 1, false},
		{"at min", 0, -1, 0, false},
		{"no direction", 0.5, 0, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextValue(ctrl, tt.current, tt.direction)
			if ok != tt.ok || got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Fatalf("nextValue(%v, %d) = %v,%v want %v,%v", tt.current, tt.direction, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNextValueDefaultStep(t *testing.T) {
	got, ok := nextValue(core.ParameterControl{}, 1, 1)
	if !ok || got < 1.05-1e-9 || got > 1.05+1e-9 {
		t.Fatalf("default step gave %v,%v", got, ok)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		step float64
		want string
	}{
		{0.5, "2.3"},
		{0.05, "2.27"},
		{0.005, "2.270"},
		{0.0001, "2.2700"},
		{0, "2.27"},
	}
	for _, tt := range tests {
		if got := formatFloat(core.ParameterControl{Step: tt.step}, 2.27); got != tt.want {
			t.Fatalf("formatFloat(step=%v) = %q, want %q", tt.step, got, tt.want)
		}
	}
}
