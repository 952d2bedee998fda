// Package tui renders a session as plain terminal frames for headless runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"cellsim/internal/core"
	"cellsim/internal/session"
)

var (
	gridStyle   = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Options sizes a frame.
type Options struct {
	// MaxGridSide is the largest board drawn cell by cell; bigger boards
	// only get the stats panel.
	MaxGridSide int
	ChartWidth  int
	ChartHeight int
}

// DefaultOptions fits a typical 80x40 terminal.
func DefaultOptions() Options {
	return Options{MaxGridSide: 64, ChartWidth: 60, ChartHeight: 8}
}

// Frame renders the board, stats panel and metric chart of s.
func Frame(s *session.Session, opts Options) string {
	sim := s.Sim()
	snap := s.Snapshot()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(strings.ToUpper(sim.Name())) + "\n")
	stats.WriteString(row("state", s.State().String()))
	stats.WriteString(row("seed", fmt.Sprint(s.Seed())))
	stats.WriteString(row("step", fmt.Sprint(s.Series().NextStep()-1)))
	stats.WriteString(row(metricLabel(sim), fmt.Sprintf("%.4f", s.Metric())))
	if p, ok := sim.(core.ParameterProvider); ok {
		stats.WriteString("\n" + Parameters(p.Parameters()))
	}
	statsView := statsStyle.Render(stats.String())

	top := statsView
	if snap.Side() > 0 && snap.Side() <= opts.MaxGridSide {
		top = lipgloss.JoinHorizontal(lipgloss.Top, gridStyle.Render(Grid(snap, sim.Name())), statsView)
	}

	lo, hi := sim.MetricRange()
	return lipgloss.JoinVertical(lipgloss.Left, top, "", graphStyle.Render(Chart(s, lo, hi, opts)))
}

// Grid draws one character per cell.
func Grid(snap core.Snapshot, sim string) string {
	on, off := '#', '.'
	if sim == "ising" {
		on, off = '+', '-'
	}
	side := snap.Side()
	cells := snap.Cells()
	var b strings.Builder
	b.Grow(side * (side + 1))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if cells[y*side+x] > 0 {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		if y < side-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Chart plots the visible metric window with the y axis pinned to [lo, hi].
func Chart(s *session.Session, lo, hi float64, opts Options) string {
	w := s.Window()
	values := w.Values()
	if len(values) == 0 {
		return "(no data)"
	}
	if len(values) == 1 {
		// asciigraph needs two points to draw a segment.
		values = append(values, values[0])
	}
	caption := fmt.Sprintf("%s, steps %d..%d", metricLabel(s.Sim()), w.Lower, w.Upper)
	return asciigraph.Plot(values,
		asciigraph.Height(opts.ChartHeight),
		asciigraph.Width(opts.ChartWidth),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

// Parameters renders a snapshot as label/value rows grouped by section.
func Parameters(snap core.ParameterSnapshot) string {
	var b strings.Builder
	for i, g := range snap.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(valueStyle.Render(strings.ToUpper(g.Name)) + "\n")
		for _, p := range g.Params {
			b.WriteString(row(p.Label, p.Value))
		}
	}
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func metricLabel(sim core.Sim) string {
	if sim.Name() == "ising" {
		return "magnetization"
	}
	return "density"
}
