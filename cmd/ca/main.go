//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"cellsim/internal/app"
	"cellsim/internal/config"
	"cellsim/internal/session"
	_ "cellsim/internal/sims/ising"
	_ "cellsim/internal/sims/life"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional, uses embedded defaults)")
	simName := flag.String("sim", "", "Simulation to open (overrides run.sim)")
	boardPixels := flag.Int("board", 750, "Board area side in pixels")
	var overrides config.Overrides
	flag.Var(&overrides, "set", "Config override key=value (repeatable)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := overrides.Apply(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *simName != "" {
		cfg.Run.Sim = *simName
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	settings := session.NewSettings(cfg)
	sim, err := settings.Build()
	if err != nil {
		slog.Error("failed to build sim", "error", err)
		os.Exit(1)
	}
	sess := session.New(sim, session.Options{Window: cfg.Chart.Window, Logger: logger})
	sess.Generate(cfg.Run.Seed)

	game := app.New(sess, settings, app.Options{BoardPixels: *boardPixels, Logger: logger})
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("cellsim - " + sim.Name())
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	slog.Info("starting", "sim", sim.Name(), "seed", cfg.Run.Seed, "side", sim.Size().W)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game exited", "error", err)
		os.Exit(1)
	}
}
