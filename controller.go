package mandel

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// State is the render state of a Controller.
type State int

const (
	// Idle means no scan is running.
	Idle State = iota
	// Scanning means a scan is running against the current view.
	Scanning
	// CancelRequested means the running scan was asked to stop and has not
	// returned yet.
	CancelRequested
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case CancelRequested:
		return "cancel-requested"
	}
	return "unknown"
}

// Controller owns the viewport, the frame buffer and the view history, and
// drives the background render loop.
//
// Commands (SetViewport, Zoom, Reset, Undo, Redo, SetStrategy, Resize) may be
// issued from any goroutine. Each one that changes what should be on screen
// cancels the running scan and schedules a fresh one. Run executes the scans
// and is the only writer of the frame buffer's pixels.
type Controller struct {
	mu       sync.Mutex
	viewport Viewport
	strategy Strategy
	buf      *FrameBuffer
	history  *History
	state    State
	refresh  bool
	cancel   context.CancelFunc

	counter  Counter
	palette  Palette
	observer Observer
	logger   *slog.Logger
	interval time.Duration

	// Undo/redo availability as last told to the observer. Only the
	// goroutine that set publishing touches undoShown and redoShown.
	publishing bool
	republish  bool
	undoShown  bool
	redoShown  bool

	wake    chan struct{}
	running atomic.Bool
}

// NewController creates a Controller showing the default viewport with the
// LineByLine strategy, modified by opts. Call Run to start rendering.
func NewController(opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Controller{
		viewport: o.viewport,
		strategy: o.strategy,
		history:  NewHistory(o.historyLimit),
		counter:  o.counter,
		palette:  o.palette,
		observer: o.observer,
		logger:   o.logger,
		interval: o.interval,
		wake:     make(chan struct{}, 1),
	}
	if o.sized {
		c.buf = NewFrameBuffer(o.width, o.height)
		c.refresh = true
	}
	return c
}

func (c *Controller) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// Viewport returns the current view.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// Strategy returns the selected scan strategy.
func (c *Controller) Strategy() Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy
}

// State returns the current render state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Buffer returns the current frame buffer, or nil before the first size is
// known. The returned buffer is replaced, not resized, by Resize.
func (c *Controller) Buffer() *FrameBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

// Size returns the dimensions of the current frame buffer.
func (c *Controller) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf == nil {
		return 0, 0
	}
	return c.buf.Width(), c.buf.Height()
}

// CanUndo reports whether Undo would change the view.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanUndo()
}

// CanRedo reports whether Redo would change the view.
func (c *Controller) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanRedo()
}

// History returns copies of the undo and redo stacks, oldest first.
func (c *Controller) History() (undo, redo []Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.UndoStack(), c.history.RedoStack()
}

// Pending reports whether a scan is running or scheduled.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh || c.state != Idle
}

// SetViewport records the current view in the history and shows the
// rectangle spanned by the corners a and b, given in any order.
func (c *Controller) SetViewport(a, b Complex) {
	c.apply(func() bool {
		c.history.Record(c.viewport)
		c.setViewportLocked(NewViewport(a, b))
		return true
	})
}

// Zoom shows the part of the current view under the pixel rectangle with
// opposite corners (x0, y0) and (x1, y1), as produced by a mouse drag. A
// rectangle with no width or no height is ignored.
func (c *Controller) Zoom(x0, y0, x1, y1 int) {
	c.apply(func() bool {
		if x0 == x1 || y0 == y1 || c.buf == nil {
			return false
		}
		w, h := c.buf.Width(), c.buf.Height()
		a := c.viewport.PixelToComplex(x0, y0, w, h)
		b := c.viewport.PixelToComplex(x1, y1, w, h)
		c.history.Record(c.viewport)
		c.setViewportLocked(NewViewport(a, b))
		return true
	})
}

// Reset returns to the default view. It does nothing when the default view
// is already shown.
func (c *Controller) Reset() {
	c.apply(func() bool {
		if c.viewport.IsDefault() {
			return false
		}
		c.history.Record(c.viewport)
		c.setViewportLocked(DefaultViewport())
		return true
	})
}

// Undo returns to the previous view. It does nothing when there is none.
func (c *Controller) Undo() {
	c.apply(func() bool {
		v, ok := c.history.Undo(c.viewport)
		if ok {
			c.setViewportLocked(v)
		}
		return ok
	})
}

// Redo reapplies the most recently undone view. It does nothing when there
// is none.
func (c *Controller) Redo() {
	c.apply(func() bool {
		v, ok := c.history.Redo(c.viewport)
		if ok {
			c.setViewportLocked(v)
		}
		return ok
	})
}

// SetStrategy selects the scan strategy. A running scan is cancelled and the
// next one starts from scratch with s. Unknown strategies are ignored.
func (c *Controller) SetStrategy(s Strategy) {
	if !s.Valid() {
		c.log().Warn("mandel: ignoring unknown strategy", "strategy", int(s))
		return
	}
	c.apply(func() bool {
		if c.strategy == s {
			return false
		}
		c.strategy = s
		c.invalidateLocked()
		return true
	})
}

// Resize replaces the frame buffer with a new one of the given dimensions
// and schedules a fresh scan. Negative dimensions are treated as zero; a
// zero-sized buffer is never scanned. Resizing to the current size does
// nothing.
func (c *Controller) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	c.apply(func() bool {
		if c.buf != nil && c.buf.Width() == width && c.buf.Height() == height {
			return false
		}
		c.buf = NewFrameBuffer(width, height)
		c.invalidateLocked()
		return true
	})
}

// Refresh schedules a new scan of the current view without changing it.
func (c *Controller) Refresh() {
	c.apply(func() bool {
		c.invalidateLocked()
		return true
	})
}

// Export returns a copy of the frame buffer as it is now. It runs on the
// caller's goroutine and neither waits for nor pauses a running scan; each
// pixel of the copy holds a complete color.
func (c *Controller) Export() *image.RGBA {
	buf := c.Buffer()
	if buf == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return buf.Snapshot()
}

// apply runs fn under the lock and, if it changed anything, wakes the
// render loop and publishes the new history availability.
func (c *Controller) apply(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	c.mu.Unlock()

	if !changed {
		return
	}
	c.signal()
	c.publishHistory()
}

// publishHistory tells the observer about changes in undo and redo
// availability. One goroutine publishes at a time and always reads the
// current history, so notifications arrive in order and the last one
// delivered matches the state. A command issued while another goroutine is
// publishing, including one issued from inside an observer callback, hands
// its update to that publisher and returns.
func (c *Controller) publishHistory() {
	c.mu.Lock()
	c.republish = true
	if c.publishing {
		c.mu.Unlock()
		return
	}
	c.publishing = true
	for c.republish {
		c.republish = false
		undo, redo := c.history.CanUndo(), c.history.CanRedo()
		c.mu.Unlock()

		if undo != c.undoShown {
			c.undoShown = undo
			c.observer.UndoAvailable(undo)
		}
		if redo != c.redoShown {
			c.redoShown = redo
			c.observer.RedoAvailable(redo)
		}

		c.mu.Lock()
	}
	c.publishing = false
	c.mu.Unlock()
}

func (c *Controller) setViewportLocked(v Viewport) {
	c.viewport = v
	c.invalidateLocked()
}

// invalidateLocked cancels the running scan and schedules a new one.
func (c *Controller) invalidateLocked() {
	if c.state == Scanning {
		c.cancel()
		c.state = CancelRequested
	}
	c.refresh = true
}

func (c *Controller) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run executes the render loop until ctx is done. Whenever a refresh is
// pending it snapshots the view, strategy and buffer and scans them; between
// scans it waits for a command or for the polling interval. Only one Run may
// be active per Controller.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	log := c.log()
	log.Info("mandel: render loop started", "interval", c.interval)
	defer log.Info("mandel: render loop stopped")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		c.step(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-c.wake:
		case <-ticker.C:
		}
	}
}

// step runs one scan if one is pending.
func (c *Controller) step(ctx context.Context) {
	c.mu.Lock()
	if !c.refresh || c.buf == nil || ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.refresh = false
	scanCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = Scanning
	strategy := c.strategy
	t := &Target{
		Viewport: c.viewport,
		Counter:  c.counter,
		Palette:  c.palette,
		Buffer:   c.buf,
		Dirty:    c.observer.RegionDirty,
	}
	c.mu.Unlock()

	log := c.log()
	log.Debug("mandel: scan started",
		"strategy", strategy,
		"size", t.Buffer.Bounds().Size(),
		"view", t.Viewport)

	report := strategy.Scan(scanCtx, t)
	cancel()

	c.mu.Lock()
	c.state = Idle
	c.cancel = nil
	c.mu.Unlock()

	log.Debug("mandel: scan finished", "scan", report)
	c.observer.ScanFinished(report)
}
