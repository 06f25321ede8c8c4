package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/export"
	"github.com/gogpu/mandel/internal/app"
	"github.com/gogpu/mandel/internal/config"
)

// statusDuration is how long a status message stays on screen.
const statusDuration = 3 * time.Second

// runWindow opens the viewer window and blocks until it is closed.
func runWindow(ctx context.Context, cfg config.Config) error {
	v := &viewer{cfg: cfg, exportOpts: app.ExportOptions(cfg)}
	v.titleDirty.Store(true)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	v.ctl = mandel.NewController(append(opts, mandel.WithObserver(mandel.ObserverFuncs{
		OnUndoAvailable: func(ok bool) { v.canUndo.Store(ok); v.titleDirty.Store(true) },
		OnRedoAvailable: func(ok bool) { v.canRedo.Store(ok); v.titleDirty.Store(true) },
	}))...)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.ctl.Run(gctx) })

	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(60)

	err = ebiten.RunGame(v)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

// viewer is the ebiten.Game presenting a Controller's frame buffer.
type viewer struct {
	ctl        *mandel.Controller
	cfg        config.Config
	exportOpts export.Options

	frame *ebiten.Image
	pix   []byte
	shown *mandel.FrameBuffer

	dragging   bool
	start, end image.Point
	ticks      int

	status      string
	statusUntil time.Time

	canUndo, canRedo atomic.Bool
	titleDirty       atomic.Bool
}

func (v *viewer) Update() error {
	v.ticks++
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) && shift,
		ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		v.ctl.Redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		v.ctl.Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.ctl.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.saveSnapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		v.dragging = false
	}
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3} {
		if inpututil.IsKeyJustPressed(key) {
			v.ctl.SetStrategy(mandel.Strategies[i])
			v.titleDirty.Store(true)
		}
	}

	v.updateDrag()

	if v.titleDirty.Swap(false) {
		ebiten.SetWindowTitle(v.title())
	}
	return nil
}

// updateDrag tracks the zoom rectangle. Leaving the window cancels it.
func (v *viewer) updateDrag() {
	x, y := ebiten.CursorPosition()
	cur := image.Pt(x, y)
	w, h := v.ctl.Size()
	inside := cur.In(image.Rect(0, 0, w, h))

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside:
		v.dragging, v.start, v.end = true, cur, cur
	case !v.dragging:
	case !inside:
		v.dragging = false
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.dragging = false
		v.end = cur
		v.ctl.Zoom(v.start.X, v.start.Y, v.end.X, v.end.Y)
	default:
		v.end = cur
	}
}

func (v *viewer) saveSnapshot() {
	path, err := export.Save(app.SnapshotName(v.cfg, time.Now()), v.ctl.Export(), v.ctl.Viewport(), v.exportOpts)
	if err != nil {
		slog.Error("snapshot failed", "err", err)
		v.setStatus("snapshot failed: " + err.Error())
		return
	}
	slog.Info("snapshot saved", "path", path)
	v.setStatus("saved " + path)
}

func (v *viewer) setStatus(s string) {
	v.status = s
	v.statusUntil = time.Now().Add(statusDuration)
}

func (v *viewer) title() string {
	t := fmt.Sprintf("%s [%s]", v.cfg.Window.Title, v.ctl.Strategy())
	if v.canUndo.Load() {
		t += " undo"
	}
	if v.canRedo.Load() {
		t += " redo"
	}
	return t
}

func (v *viewer) Draw(screen *ebiten.Image) {
	buf := v.ctl.Buffer()
	if buf == nil || buf.Bounds().Empty() {
		return
	}

	if buf != v.shown {
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(buf.Width(), buf.Height())
		v.pix = make([]byte, 4*buf.Width()*buf.Height())
		v.shown = buf
		buf.MarkAllDirty()
	}
	if len(buf.TakeDirty()) > 0 {
		buf.CopyTo(v.pix)
		v.frame.WritePixels(v.pix)
	}
	screen.DrawImage(v.frame, nil)

	if v.dragging {
		r := image.Rectangle{Min: v.start, Max: v.end}.Canon()
		vector.StrokeRect(screen,
			float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()),
			1, selectionColor(v.ticks), false)
	}
	if v.status != "" && time.Now().Before(v.statusUntil) {
		ebitenutil.DebugPrintAt(screen, v.status, 4, 4)
	}
	if v.ctl.Pending() {
		ebitenutil.DebugPrintAt(screen, "rendering...", 4, buf.Height()-20)
	}
}

// selectionColor cycles the drag rectangle through bright colors so it
// stays visible on any part of the image.
func selectionColor(tick int) color.Color {
	return (mandel.Banded{}).Color(1 + (tick*7)%1023)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.ctl.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
