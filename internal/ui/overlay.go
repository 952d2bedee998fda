//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"cellsim/internal/render"
	"cellsim/internal/session"
)

// Overlay draws the metric chart below the board. Key C hides it.
type Overlay struct {
	sess    *session.Session
	painter *render.ChartPainter
	hidden  bool
}

// NewOverlay constructs a chart overlay for the session.
func NewOverlay(sess *session.Session) *Overlay {
	return &Overlay{sess: sess, painter: render.NewChartPainter()}
}

// Update toggles visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.hidden = !o.hidden
	}
}

// Draw renders the visible window into r.
func (o *Overlay) Draw(screen *ebiten.Image, r render.Rect) {
	if o.hidden || r.W <= 0 || r.H <= 0 {
		return
	}
	w := o.sess.Window()
	lo, hi := o.sess.Sim().MetricRange()
	o.painter.Draw(screen, w, lo, hi, r)

	face := basicfont.Face7x13
	label := fmt.Sprintf("%.3f  steps %d..%d", o.sess.Metric(), w.Lower, w.Upper)
	text.Draw(screen, label, face, int(r.X)+6, int(r.Y)+14, color.RGBA{R: 200, G: 200, B: 210, A: 255})
}
