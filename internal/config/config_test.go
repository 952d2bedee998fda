package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Sim != "life" {
		t.Fatalf("default sim = %q, want life", cfg.Run.Sim)
	}
	if cfg.Life.Side != 50 || cfg.Life.AliveAtStart != 15 || cfg.Life.IntervalMS != 250 {
		t.Fatalf("unexpected life defaults: %+v", cfg.Life)
	}
	if !slices.Equal(cfg.Life.Stay, []int{2, 3}) || !slices.Equal(cfg.Life.Born, []int{3}) {
		t.Fatalf("unexpected life rule defaults: stay=%v born=%v", cfg.Life.Stay, cfg.Life.Born)
	}
	if cfg.Ising.Boltzmann != 1 || cfg.Ising.FPS != 60 {
		t.Fatalf("unexpected ising defaults: %+v", cfg.Ising)
	}
	if cfg.Chart.Window != 250 {
		t.Fatalf("chart window = %d, want 250", cfg.Chart.Window)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("run:\n  sim: ising\nising:\n  temperature: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.Sim != "ising" || cfg.Ising.Temperature != 0 {
		t.Fatalf("file values not applied: %+v %+v", cfg.Run, cfg.Ising)
	}
	if cfg.Ising.Side != 256 || cfg.Life.Side != 50 {
		t.Fatal("keys absent from the file must keep their defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Life.Born = []int{3, 6}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(back.Life.Born, []int{3, 6}) {
		t.Fatalf("born = %v after reload", back.Life.Born)
	}
}

func TestApplyOverride(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*Config) bool
	}{
		{"life.stay", "2,3,4", func(c *Config) bool { return slices.Equal(c.Life.Stay, []int{2, 3, 4}) }},
		{"life.born", "36", func(c *Config) bool { return slices.Equal(c.Life.Born, []int{3, 6}) }},
		{"life.born", "", func(c *Config) bool { return len(c.Life.Born) == 0 }},
		{"ising.temperature", "0", func(c *Config) bool { return c.Ising.Temperature == 0 }},
		{"run.sim", "ising", func(c *Config) bool { return c.Run.Sim == "ising" }},
		{"RUN.SEED", "9", func(c *Config) bool { return c.Run.Seed == 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			if err := ApplyOverride(cfg, tt.key, tt.value); err != nil {
				t.Fatalf("ApplyOverride: %v", err)
			}
			if !tt.check(cfg) {
				t.Fatalf("override %s=%s not applied", tt.key, tt.value)
			}
		})
	}
}

func TestApplyOverrideErrors(t *testing.T) {
	cfg := Default()
	if err := ApplyOverride(cfg, "nope.key", "1"); err == nil {
		t.Fatal("expected unknown key error")
	}
	err := ApplyOverride(cfg, "life.side", "abc")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected wrapped NumError, got %v", err)
	}
	if err := ApplyOverride(cfg, "life.stay", "2,x"); err == nil {
		t.Fatal("expected parse error for bad count")
	}
}

func TestOverridesApply(t *testing.T) {
	var o Overrides
	_ = o.Set("life.side=10")
	_ = o.Set("ising.field=0.5")
	cfg := Default()
	if err := o.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Life.Side != 10 || cfg.Ising.Field != 0.5 {
		t.Fatalf("overrides not applied: %+v %+v", cfg.Life, cfg.Ising)
	}

	bad := Overrides{"life.side"}
	var oe *OverrideError
	if err := bad.Apply(cfg); !errors.As(err, &oe) {
		t.Fatalf("expected OverrideError, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	c.Life.Stay[0] = 8
	if cfg.Life.Stay[0] == 8 {
		t.Fatal("Clone shares the stay slice")
	}
}
