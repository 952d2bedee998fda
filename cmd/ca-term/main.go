// Command ca-term runs a simulation without a window, redrawing the board
// and metric chart in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cellsim/internal/config"
	"cellsim/internal/core"
	"cellsim/internal/series"
	"cellsim/internal/session"
	_ "cellsim/internal/sims/ising"
	_ "cellsim/internal/sims/life"
	"cellsim/internal/telemetry"
	"cellsim/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional, uses embedded defaults)")
	simName := flag.String("sim", "", "Simulation to run (overrides run.sim)")
	steps := flag.Int("steps", -1, "Steps to run, 0 until interrupted (overrides run.steps)")
	outputDir := flag.String("output", "", "Directory for series.csv and config.yaml (overrides output.dir)")
	fast := flag.Bool("fast", false, "Step as fast as possible instead of at the sim's pace")
	quiet := flag.Bool("quiet", false, "Do not draw frames")
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
	if *steps >= 0 {
		cfg.Run.Steps = *steps
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frames := io.Writer(os.Stdout)
	if *quiet {
		frames = io.Discard
	}
	if err := run(ctx, cfg, frames, *fast); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, frames io.Writer, fast bool) (err error) {
	sim, err := core.NewSim(cfg.Run.Sim, cfg)
	if err != nil {
		return err
	}
	sess := session.New(sim, session.Options{Window: cfg.Chart.Window, Logger: slog.Default()})

	output, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		return err
	}
	var writeErr error
	sess.OnSample(func(s series.Sample) {
		if err := output.WriteSample(s); err != nil && writeErr == nil {
			writeErr = err
		}
	})

	sess.Generate(cfg.Run.Seed)
	slog.Info("starting headless simulation",
		"sim", sim.Name(),
		"seed", cfg.Run.Seed,
		"side", sim.Size().W,
		"steps", cfg.Run.Steps,
		"output", output.Dir(),
	)

	printEvery := cfg.Run.PrintEvery
	if printEvery <= 0 {
		printEvery = 1
	}
	opts := tui.DefaultOptions()
	draw := func() {
		// Clear and home the cursor before each frame.
		fmt.Fprint(frames, "\x1b[H\x1b[2J")
		fmt.Fprintln(frames, tui.Frame(sess, opts))
	}
	draw()

	if !fast {
		if err := sess.Run(time.Now()); err != nil {
			return err
		}
	}
	start := time.Now()
	done := 0
	for cfg.Run.Steps == 0 || done < cfg.Run.Steps {
		if fast {
			if err := ctx.Err(); err != nil {
				break
			}
			if _, _, err := sess.Step(); err != nil {
				return err
			}
		} else {
			wait := time.Until(sess.NextDue())
			if wait < 0 {
				wait = 0
			}
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
			if ctx.Err() != nil {
				break
			}
			stepped, err := sess.Tick(time.Now())
			if err != nil {
				return err
			}
			if !stepped {
				continue
			}
		}
		done++
		if writeErr != nil {
			return writeErr
		}
		if done%printEvery == 0 {
			draw()
		}
	}
	sess.Stop()
	draw()

	summary := telemetry.Summarize(sess.Series().Samples())
	slog.Info("simulation finished",
		"steps", done,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"interrupted", errors.Is(ctx.Err(), context.Canceled),
		"mean", summary.Mean,
		"std", summary.StdDev,
		"min", summary.Min,
		"max", summary.Max,
	)
	return writeErr
}
