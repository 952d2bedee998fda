//go:build ebiten

package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cellsim/internal/render"
	"cellsim/internal/session"
	"cellsim/internal/ui"
)

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	sess    *session.Session
	ctrl    *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	opts    Options
	log     *slog.Logger
}

// New constructs a Game for the session. settings holds the configuration
// edited in the Settings state and rebuilt into a sim on generate.
func New(sess *session.Session, settings *session.Settings, opts Options) *Game {
	opts = opts.withDefaults()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	hud := ui.NewHUD(sess, settings, opts.PanelWidth)
	return &Game{
		sess:    sess,
		ctrl:    &Controller{Session: sess, Settings: settings, Panel: hud, ResizeStep: opts.ResizeStep},
		painter: render.NewGridPainter(sess.Sim().Size().W),
		hud:     hud,
		overlay: ui.NewOverlay(sess),
		opts:    opts,
		log:     log,
	}
}

// Update handles input and advances the session when its repeater is due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	now := time.Now()
	for _, a := range pressedActions() {
		g.report(a, g.ctrl.Apply(a, now))
	}
	if g.sess.State() == session.StateSettings {
		g.editCounts()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if mx < g.opts.BoardPixels && my < g.opts.BoardPixels {
			g.report(ActionToggle, g.sess.ToggleAtPixel(float64(mx), float64(my), g.cellSize()))
		}
	}

	g.hud.Update(g.opts.BoardPixels)
	g.overlay.Update()

	if _, err := g.sess.Tick(now); err != nil {
		return err
	}
	return nil
}

// editCounts toggles Life born counts with the digit keys, or stay counts
// with shift held.
func (g *Game) editCounts() {
	set := "born"
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		set = "stay"
	}
	for n, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.ctrl.ToggleCount(set, n); err != nil {
				g.log.Warn("count edit rejected", "set", set, "count", n, "err", err)
			}
		}
	}
}

func (g *Game) report(a Action, err error) {
	if err == nil {
		return
	}
	level := slog.LevelWarn
	if errors.Is(err, session.ErrNotEditable) || errors.Is(err, session.ErrRunning) || errors.Is(err, session.ErrNoBoard) {
		level = slog.LevelDebug
	}
	g.log.Log(context.Background(), level, "action rejected", "action", a, "state", g.sess.State(), "err", err)
}

// Draw renders the board, the HUD panel and the chart.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.sess.State() != session.StateSettings {
		g.painter.Blit(screen, g.sess.Snapshot(), render.PaletteFor(g.sess.Sim().Name()), g.cellSize())
	}
	g.hud.Draw(screen, g.opts.BoardPixels, g.opts.BoardPixels+g.opts.ChartHeight)
	g.overlay.Draw(screen, render.Rect{
		X: 0,
		Y: float32(g.opts.BoardPixels),
		W: float32(g.opts.BoardPixels),
		H: float32(g.opts.ChartHeight),
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.BoardPixels + g.opts.PanelWidth, g.opts.BoardPixels + g.opts.ChartHeight
}

func (g *Game) cellSize() float64 {
	return CellSize(g.opts.BoardPixels, g.sess.Sim().Size().W)
}

func pressedActions() []Action {
	var out []Action
	for key, a := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			out = append(out, a)
		}
	}
	return out
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2,
	ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

var keymap = map[ebiten.Key]Action{
	ebiten.KeySpace:        ActionRunStop,
	ebiten.KeyN:            ActionStep,
	ebiten.KeyR:            ActionRegenerate,
	ebiten.KeyS:            ActionReseed,
	ebiten.KeyG:            ActionGenerate,
	ebiten.KeyE:            ActionEdit,
	ebiten.KeyTab:          ActionSwitchSim,
	ebiten.KeyArrowUp:      ActionWarmer,
	ebiten.KeyArrowDown:    ActionCooler,
	ebiten.KeyBracketLeft:  ActionShrink,
	ebiten.KeyBracketRight: ActionGrow,
}
