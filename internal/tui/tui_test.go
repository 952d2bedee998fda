package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"cellsim/internal/core"
	"cellsim/internal/session"
	"cellsim/internal/sims/ising"
	"cellsim/internal/sims/life"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestGrid(t *testing.T) {
	g, err := core.NewGrid(3)
	if err != nil {
		t.Fatal(err)
	}
	_ = g.Set(1, 0, 1)
	_ = g.Set(2, 2, 1)
	if got, want := Grid(g.Snapshot(), "life"), ".#.\n...\n..#"; got != want {
		t.Fatalf("Grid = %q, want %q", got, want)
	}

	g.Fill(-1)
	_ = g.Set(0, 0, 1)
	if got, want := Grid(g.Snapshot(), "ising"), "+--\n---\n---"; got != want {
		t.Fatalf("Grid = %q, want %q", got, want)
	}
}

func TestFrameShowsBoardAndStats(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Side = 8
	sim, err := life.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(sim, session.Options{Logger: quiet()})
	s.Generate(3)
	for i := 0; i < 4; i++ {
		if _, _, err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	out := Frame(s, DefaultOptions())
	for _, want := range []string{"LIFE", "generated", "density", "Stay", "8x8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("frame missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, Grid(s.Snapshot(), "life")[:8]) {
		t.Fatalf("frame missing board rows:\n%s", out)
	}
}

func TestFrameSkipsLargeBoards(t *testing.T) {
	cfg := ising.DefaultConfig()
	cfg.Side = 32
	sim, err := ising.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(sim, session.Options{Logger: quiet()})
	s.Generate(1)
	out := Frame(s, Options{MaxGridSide: 16, ChartWidth: 30, ChartHeight: 4})
	if strings.Contains(out, strings.Repeat("+", 8)) || strings.Contains(out, strings.Repeat("-", 32)) {
		t.Fatalf("board drawn despite MaxGridSide:\n%s", out)
	}
	if !strings.Contains(out, "magnetization") {
		t.Fatalf("frame missing metric label:\n%s", out)
	}
}

func TestChartNoData(t *testing.T) {
	sim, err := life.New(life.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(sim, session.Options{Logger: quiet()})
	if got := Chart(s, 0, 1, DefaultOptions()); got != "(no data)" {
		t.Fatalf("Chart on empty series = %q", got)
	}
}

func TestParameters(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Model", Params: []core.Parameter{core.FloatParam("temperature", "Temperature", 2.27)}},
	}}
	out := Parameters(snap)
	if !strings.Contains(out, "MODEL") || !strings.Contains(out, "Temperature") || !strings.Contains(out, "2.27") {
		t.Fatalf("unexpected parameters block:\n%s", out)
	}
}
