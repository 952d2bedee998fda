// Package series keeps the per-step metric history plotted next to the grid.
package series

// DefaultWindow is the number of points shown when no window is requested.
const DefaultWindow = 250

// MinAxisSpan is the smallest x-axis span, so short runs are not stretched.
const MinAxisSpan = 10

// Sample is one metric reading.
type Sample struct {
	Step  int     `csv:"step"`
	Value float64 `csv:"value"`
}

// Buffer is an append-only sequence of samples with strictly increasing
// step indices starting at 0. Windowing hides old samples but never drops
// them.
type Buffer struct {
	samples []Sample
	next    int
}

// New returns an empty buffer.
func New() *Buffer { return &Buffer{} }

// Append records v under the next step index and returns the sample.
func (b *Buffer) Append(v float64) Sample {
	s := Sample{Step: b.next, Value: v}
	b.samples = append(b.samples, s)
	b.next++
	return s
}

// Reset drops every sample and restarts indices at 0.
func (b *Buffer) Reset() {
	b.samples = nil
	b.next = 0
}

// Len returns the number of retained samples.
func (b *Buffer) Len() int { return len(b.samples) }

// NextStep is the index the next Append will use.
func (b *Buffer) NextStep() int { return b.next }

// Last returns the most recent sample.
func (b *Buffer) Last() (Sample, bool) {
	if len(b.samples) == 0 {
		return Sample{}, false
	}
	return b.samples[len(b.samples)-1], true
}

// Samples returns a copy of every retained sample.
func (b *Buffer) Samples() []Sample {
	return append([]Sample(nil), b.samples...)
}

// Window is the visible slice of a buffer plus its x-axis bounds.
type Window struct {
	Samples []Sample
	// Lower is the step index at the left edge of the axis.
	Lower int
	// Upper is the right edge: the sample count, at least Lower+MinAxisSpan.
	Upper int
}

// Values returns the sample values in order.
func (w Window) Values() []float64 {
	out := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = s.Value
	}
	return out
}

// Windowed returns the most recent maxVisible samples (DefaultWindow when
// maxVisible <= 0) and the axis bounds for plotting them.
func (b *Buffer) Windowed(maxVisible int) Window {
	if maxVisible <= 0 {
		maxVisible = DefaultWindow
	}
	start := len(b.samples) - maxVisible
	if start < 0 {
		start = 0
	}
	w := Window{Samples: append([]Sample(nil), b.samples[start:]...)}
	if len(w.Samples) > 0 {
		w.Lower = w.Samples[0].Step
	}
	w.Upper = b.next
	if w.Upper < w.Lower+MinAxisSpan {
		w.Upper = w.Lower + MinAxisSpan
	}
	return w
}
