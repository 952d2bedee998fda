package render

import (
	"image/color"
	"testing"

	"cellsim/internal/series"
)

func TestFillCellsRGBA(t *testing.T) {
	cells := []int8{1, 0, -1}
	buf := make([]byte, 4*len(cells))
	p := Palette{On: color.RGBA{R: 255, A: 255}, Off: color.RGBA{B: 255, A: 255}}
	fillCellsRGBA(buf, cells, p)
	want := []byte{255, 0, 0, 255, 0, 0, 255, 255, 0, 0, 255, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %d, want %d (buf=%v)", i, buf[i], want[i], buf)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor("ising") != IsingPalette {
		t.Fatal("ising should use the spin palette")
	}
	if PaletteFor("life") != DefaultPalette {
		t.Fatal("life should use the default palette")
	}
}

func TestChartPoints(t *testing.T) {
	buf := series.New()
	for _, v := range []float64{0, 0.5, 1} {
		buf.Append(v)
	}
	w := buf.Windowed(0)
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	pts := ChartPoints(w, 0, 1, r)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	// Upper is 10 for three samples, so step 2 lands at 20% of the width.
	want := []Point{{10, 70}, {20, 45}, {30, 20}}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestChartPointsClampsAndEmpty(t *testing.T) {
	if pts := ChartPoints(series.Window{}, 0, 1, Rect{W: 10, H: 10}); pts != nil {
		t.Fatalf("expected nil for empty window, got %v", pts)
	}
	w := series.Window{Samples: []series.Sample{{Step: 0, Value: 5}, {Step: 1, Value: -5}}, Upper: 10}
	pts := ChartPoints(w, -1, 1, Rect{W: 10, H: 10})
	if pts[0].Y != 0 || pts[1].Y != 10 {
		t.Fatalf("values outside range not clamped: %v", pts)
	}
}

func TestZeroLine(t *testing.T) {
	r := Rect{Y: 0, H: 100}
	if y, ok := ZeroLine(-1, 1, r); !ok || y != 50 {
		t.Fatalf("ZeroLine(-1,1) = %v,%v", y, ok)
	}
	if _, ok := ZeroLine(0, 1, r); ok {
		t.Fatal("density range has no interior zero line")
	}
}
