package telemetry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cellsim/internal/series"
)

// Summary aggregates a run of metric samples.
type Summary struct {
	Count  int     `csv:"count"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"std"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	// MeanAbs is the mean absolute value, the order parameter for
	// magnetization runs where the sign flips between domains.
	MeanAbs float64 `csv:"mean_abs"`
}

// Summarize computes statistics over the sample values. An empty input
// returns the zero Summary.
func Summarize(samples []series.Sample) Summary {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return SummarizeValues(values)
}

// SummarizeValues is Summarize over raw values.
func SummarizeValues(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	out := Summary{Count: n, Min: floats.Min(values), Max: floats.Max(values)}
	if n == 1 {
		out.Mean = values[0]
	} else {
		out.Mean, out.StdDev = stat.MeanStdDev(values, nil)
	}
	abs := make([]float64, n)
	for i, v := range values {
		abs[i] = math.Abs(v)
	}
	out.MeanAbs = stat.Mean(abs, nil)
	return out
}
