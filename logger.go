package mandel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so SetLogger may
// race with a running render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by mandel. By default nothing is
// logged. Pass nil to restore the silent default.
//
// Log levels used by mandel:
//   - [slog.LevelDebug]: scan start and finish with timings and pixel counts
//   - [slog.LevelInfo]: render loop lifecycle
//   - [slog.LevelWarn]: ignored or clamped configuration
//
// Example:
//
//	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogValue implements slog.LogValuer, logging the view as its corners plus
// the center and extent, which stay readable at deep zoom.
func (v Viewport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("min", v.Min.String()),
		slog.String("max", v.Max.String()),
		slog.String("center", v.Center().String()),
		slog.Float64("width", v.Width()),
		slog.Float64("height", v.Height()),
	)
}

// LogValue implements slog.LogValuer.
func (r ScanReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("strategy", r.Strategy.String()),
		slog.String("status", r.Status.String()),
		slog.Int("writes", r.Writes),
		slog.Int("evaluations", r.Evaluations),
		slog.Duration("elapsed", r.Elapsed),
	)
}
