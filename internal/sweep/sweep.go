// Package sweep measures Ising magnetization across a range of
// temperatures using a pool of workers.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"cellsim/internal/core"
	"cellsim/internal/sims/ising"
	"cellsim/internal/telemetry"
)

// Plan describes one sweep.
type Plan struct {
	Base    ising.Config
	Temps   []float64
	BurnIn  int
	Measure int
	Seed    int64
	Workers int
}

// Validate checks the plan before any work starts.
func (p Plan) Validate() error {
	if len(p.Temps) == 0 {
		return fmt.Errorf("%w: no temperatures", core.ErrOutOfRange)
	}
	if p.BurnIn < 0 || p.Measure <= 0 {
		return fmt.Errorf("%w: burn-in %d, measure %d", core.ErrOutOfRange, p.BurnIn, p.Measure)
	}
	for _, t := range p.Temps {
		params := p.Base.Params
		params.Temperature = t
		if err := params.Validate(); err != nil {
			return err
		}
	}
	return p.Base.Validate()
}

// Result is one measured temperature.
type Result struct {
	Temperature float64 `csv:"temperature"`
	Beta        float64 `csv:"beta"`
	MeanAbsM    float64 `csv:"mean_abs_m"`
	MeanM       float64 `csv:"mean_m"`
	StdM        float64 `csv:"std_m"`
	MinM        float64 `csv:"min_m"`
	MaxM        float64 `csv:"max_m"`
	Steps       int     `csv:"steps"`
	ElapsedMS   int64   `csv:"elapsed_ms"`
}

// Temperatures returns n evenly spaced values from lo to hi inclusive.
func Temperatures(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Run measures every temperature of the plan. Results are sorted by
// temperature. Cancelling ctx stops handing out new jobs; finished results
// are still returned along with ctx's error.
func Run(ctx context.Context, plan Plan) ([]Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	workers := plan.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		index int
		temp  float64
	}
	jobs := make(chan job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// Each temperature gets its own seed so results do not depend
				// on which worker picked the job.
				results <- Measure(plan.Base, j.temp, plan.BurnIn, plan.Measure, plan.Seed+int64(j.index))
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i, t := range plan.Temps {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- job{index: i, temp: t}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []Result
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Temperature < all[j].Temperature })
	return all, ctx.Err()
}

// Measure randomizes a lattice at temperature t, discards burnIn steps and
// summarizes the magnetization over the next measure steps.
func Measure(base ising.Config, t float64, burnIn, measure int, seed int64) Result {
	start := time.Now()
	cfg := base
	cfg.Params.Temperature = t
	sim, err := ising.New(cfg)
	if err != nil {
		return Result{Temperature: t, MeanAbsM: math.NaN()}
	}
	sim.Reset(seed)
	for i := 0; i < burnIn; i++ {
		sim.Step()
	}
	values := make([]float64, measure)
	for i := range values {
		sim.Step()
		values[i] = sim.Metric()
	}
	s := telemetry.SummarizeValues(values)
	return Result{
		Temperature: t,
		Beta:        cfg.Params.InverseTemperature(),
		MeanAbsM:    s.MeanAbs,
		MeanM:       s.Mean,
		StdM:        s.StdDev,
		MinM:        s.Min,
		MaxM:        s.Max,
		Steps:       burnIn + measure,
		ElapsedMS:   time.Since(start).Milliseconds(),
	}
}
