package render

import "cellsim/internal/series"

// Point is a chart vertex in pixel space.
type Point struct {
	X, Y float32
}

// Rect is a pixel rectangle.
type Rect struct {
	X, Y, W, H float32
}

// ChartPoints maps the window's samples into r. The x axis spans
// [w.Lower, w.Upper] and the y axis [lo, hi] with hi at the top edge.
// Values outside [lo, hi] are clamped to the border.
func ChartPoints(w series.Window, lo, hi float64, r Rect) []Point {
	if len(w.Samples) == 0 || r.W <= 0 || r.H <= 0 {
		return nil
	}
	span := float64(w.Upper - w.Lower)
	if span <= 0 {
		span = 1
	}
	yspan := hi - lo
	if yspan <= 0 {
		yspan = 1
	}
	pts := make([]Point, len(w.Samples))
	for i, s := range w.Samples {
		fx := float64(s.Step-w.Lower) / span
		fy := (s.Value - lo) / yspan
		if fy < 0 {
			fy = 0
		} else if fy > 1 {
			fy = 1
		}
		pts[i] = Point{
			X: r.X + float32(fx)*r.W,
			Y: r.Y + r.H - float32(fy)*r.H,
		}
	}
	return pts
}

// ZeroLine returns the y pixel of value 0 when it lies strictly inside
// (lo, hi), for drawing a baseline under signed metrics.
func ZeroLine(lo, hi float64, r Rect) (float32, bool) {
	if !(lo < 0 && hi > 0) {
		return 0, false
	}
	f := -lo / (hi - lo)
	return r.Y + r.H - float32(f)*r.H, true
}
