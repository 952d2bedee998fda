//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"cellsim/internal/core"
	"cellsim/internal/series"
)

// GridPainter updates a single RGBA image from a board snapshot.
type GridPainter struct {
	side int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a side*side board.
func NewGridPainter(side int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(side)
	return gp
}

func (gp *GridPainter) resize(side int) {
	gp.side = side
	gp.buf = make([]byte, 4*side*side)
	gp.img = ebiten.NewImage(side, side)
}

// Blit uploads the snapshot into the painter image and draws it scaled so
// each cell covers cellSize pixels. A snapshot of a different side
// reallocates the backing image.
func (gp *GridPainter) Blit(dst *ebiten.Image, snap core.Snapshot, p Palette, cellSize float64) {
	if snap.Side() == 0 {
		return
	}
	if snap.Side() != gp.side {
		gp.resize(snap.Side())
	}
	fillCellsRGBA(gp.buf, snap.Cells(), p)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cellSize, cellSize)
	dst.DrawImage(gp.img, op)
}

// Side returns the board side the painter is sized for.
func (gp *GridPainter) Side() int { return gp.side }

// ChartPainter draws a metric window as a polyline.
type ChartPainter struct {
	Line       color.Color
	Axis       color.Color
	Background color.Color
}

// NewChartPainter returns a painter with the default colours.
func NewChartPainter() *ChartPainter {
	return &ChartPainter{
		Line:       color.RGBA{R: 120, G: 220, B: 140, A: 255},
		Axis:       color.RGBA{R: 90, G: 90, B: 100, A: 255},
		Background: color.RGBA{R: 16, G: 16, B: 20, A: 255},
	}
}

// Draw paints the window into r on dst.
func (cp *ChartPainter) Draw(dst *ebiten.Image, w series.Window, lo, hi float64, r Rect) {
	vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, cp.Background, false)
	vector.StrokeRect(dst, r.X, r.Y, r.W, r.H, 1, cp.Axis, false)
	if y, ok := ZeroLine(lo, hi, r); ok {
		vector.StrokeLine(dst, r.X, y, r.X+r.W, y, 1, cp.Axis, false)
	}
	pts := ChartPoints(w, lo, hi, r)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(dst, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, 1.5, cp.Line, true)
	}
}
