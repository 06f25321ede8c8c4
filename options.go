package mandel

import (
	"log/slog"
	"time"
)

// DefaultInterval is how long an idle render loop sleeps between checks
// for pending work when nothing wakes it.
const DefaultInterval = 20 * time.Millisecond

// Option configures a Controller during creation.
//
// Example:
//
//	ctl := mandel.NewController(
//	    mandel.WithSize(800, 600),
//	    mandel.WithStrategy(mandel.ProgressiveRefinement),
//	)
type Option func(*options)

type options struct {
	strategy     Strategy
	counter      Counter
	palette      Palette
	viewport     Viewport
	width        int
	height       int
	sized        bool
	observer     Observer
	logger       *slog.Logger
	interval     time.Duration
	historyLimit int
}

func defaultOptions() options {
	return options{
		strategy: LineByLine,
		counter:  DefaultEvaluator(),
		palette:  Banded{},
		viewport: DefaultViewport(),
		observer: ObserverFuncs{},
		interval: DefaultInterval,
	}
}

// WithStrategy sets the initial scan strategy. Unknown strategies are
// ignored.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		if s.Valid() {
			o.strategy = s
		}
	}
}

// WithEvaluator replaces the escape-time evaluator, for example with an
// Evaluator using a different iteration limit.
func WithEvaluator(c Counter) Option {
	return func(o *options) {
		if c != nil {
			o.counter = c
		}
	}
}

// WithPalette sets the palette used to color escape counts.
func WithPalette(p Palette) Option {
	return func(o *options) {
		if p != nil {
			o.palette = p
		}
	}
}

// WithViewport sets the initial view. It does not create a history entry.
func WithViewport(v Viewport) Option {
	return func(o *options) {
		o.viewport = v.Normalized()
	}
}

// WithSize allocates the initial frame buffer. Without it the Controller has
// no buffer and renders nothing until the first Resize.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height, o.sized = width, height, true
	}
}

// WithObserver sets the receiver of the Controller's notifications.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLogger sets a logger for this Controller only, overriding the package
// logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInterval sets the idle polling interval of the render loop.
// Non-positive values keep DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithHistoryLimit caps the undo stack at n entries, dropping the oldest.
// Zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}
