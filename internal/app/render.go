// Package app holds the parts of the viewer application that do not need a
// window.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/export"
	"github.com/gogpu/mandel/internal/config"
)

// ErrRenderTimeout is returned by Render when the scan does not finish in
// time.
var ErrRenderTimeout = errors.New("app: render timed out")

// RenderRequest describes a one-shot render to a file.
type RenderRequest struct {
	Output  string
	Width   int
	Height  int
	Timeout time.Duration
}

// Render draws the configured view into a req.Width×req.Height buffer with
// the normal render loop, waits for the scan to complete and saves the
// result. It returns the path written.
func Render(ctx context.Context, cfg config.Config, req RenderRequest) (string, error) {
	opts, err := cfg.Options()
	if err != nil {
		return "", err
	}
	if req.Width < 1 || req.Height < 1 {
		return "", fmt.Errorf("app: invalid size %dx%d", req.Width, req.Height)
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	done := make(chan mandel.ScanReport, 1)
	ctl := mandel.NewController(append(opts,
		mandel.WithSize(req.Width, req.Height),
		mandel.WithObserver(mandel.ObserverFuncs{
			OnScanFinished: func(r mandel.ScanReport) {
				if r.Status == mandel.Completed {
					select {
					case done <- r:
					default:
					}
				}
			},
		}),
	)...)

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(func() error { return ctl.Run(gctx) })

	var report mandel.ScanReport
	g.Go(func() error {
		defer stop()
		select {
		case report = <-done:
			return nil
		case <-gctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrRenderTimeout
			}
			return ctx.Err()
		}
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	slog.Info("render finished",
		"strategy", report.Strategy,
		"size", fmt.Sprintf("%dx%d", req.Width, req.Height),
		"elapsed", report.Elapsed)

	return export.Save(req.Output, ctl.Export(), ctl.Viewport(), ExportOptions(cfg))
}

// ExportOptions derives snapshot options from the configuration.
func ExportOptions(cfg config.Config) export.Options {
	tag, err := language.Parse(cfg.Export.Language)
	if err != nil {
		tag = language.English
	}
	return export.Options{
		Annotate: cfg.Export.Annotate,
		Language: tag,
	}
}

// SnapshotName returns a timestamped file name for a snapshot in the
// configured directory and format.
func SnapshotName(cfg config.Config, now time.Time) string {
	f, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		f = export.PNG
	}
	name := "mandel-" + now.Format("20060102-150405") + f.Ext()
	return filepath.Join(cfg.Export.Dir, name)
}
