package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cellsim/internal/config"
)

func TestRunWritesSeriesAndClosesOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Run.Sim = "life"
	cfg.Run.Steps = 5
	cfg.Life.Side = 10
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	if err := run(context.Background(), cfg, io.Discard, true); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header, the generated board and one row per step.
	if len(lines) != 7 || lines[0] != "step,value" {
		t.Fatalf("series.csv:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "config.yaml")); err != nil {
		t.Fatalf("config snapshot missing: %v", err)
	}
}

func TestRunRejectsInvalidIsingConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Run.Sim = "ising"
	cfg.Ising.FPS = 0
	if err := run(context.Background(), cfg, io.Discard, true); err == nil {
		t.Fatal("expected fps 0 to be rejected")
	}
}
