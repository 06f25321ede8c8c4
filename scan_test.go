package mandel

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

var unpainted = color.RGBA{R: 0xff, B: 0xff, A: 0x7f}

func render(t *testing.T, s Strategy, v Viewport, w, h int, counter Counter) (*image.RGBA, ScanReport) {
	t.Helper()
	buf := NewFrameBuffer(w, h)
	buf.Fill(buf.Bounds(), unpainted)
	tg := NewTarget(v, buf)
	if counter != nil {
		tg.Counter = counter
	}
	report := s.Scan(context.Background(), tg)
	if report.Status != Completed {
		t.Fatalf("%v: status = %v, want completed", s, report.Status)
	}
	return buf.Snapshot(), report
}

func diff(a, b *image.RGBA) []image.Point {
	var out []image.Point
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				out = append(out, image.Pt(x, y))
			}
		}
	}
	return out
}

func TestScanDefaultViewSmall(t *testing.T) {
	img, report := render(t, LineByLine, DefaultViewport(), 4, 4, nil)

	if report.Writes != 16 || report.Evaluations != 16 {
		t.Errorf("writes/evaluations = %d/%d, want 16/16", report.Writes, report.Evaluations)
	}
	if got := img.RGBAAt(0, 0); got == InSet || got == unpainted {
		t.Errorf("pixel (0,0) = %v, want an escape color", got)
	}
	if got, want := img.RGBAAt(0, 0), (Banded{}).Color(1); got != want {
		t.Errorf("pixel (0,0) = %v, want Color(1) = %v", got, want)
	}
	if got := img.RGBAAt(2, 2); got != InSet {
		t.Errorf("center pixel (2,2) = %v, want black", got)
	}
}

func TestScanStrategiesPaintEveryPixel(t *testing.T) {
	for _, s := range Strategies {
		t.Run(s.String(), func(t *testing.T) {
			img, _ := render(t, s, NewViewport(C(-2, -1.25), C(0.75, 1.25)), 37, 23, nil)
			for y := 0; y < 23; y++ {
				for x := 0; x < 37; x++ {
					if img.RGBAAt(x, y) == unpainted {
						t.Fatalf("pixel (%d,%d) was never written", x, y)
					}
				}
			}
		})
	}
}

func TestScanProgressiveMatchesLineByLine(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		w, h int
	}{
		{"default square", DefaultViewport(), 64, 64},
		{"odd sizes", NewViewport(C(-2, -1.25), C(0.75, 1.25)), 37, 23},
		{"tall", NewViewport(C(-0.8, 0), C(-0.7, 0.2)), 9, 40},
		{"single row", DefaultViewport(), 17, 1},
		{"seahorse valley", NewViewport(C(-0.76, 0.09), C(-0.73, 0.12)), 50, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, _ := render(t, LineByLine, tt.v, tt.w, tt.h, nil)
			got, _ := render(t, ProgressiveRefinement, tt.v, tt.w, tt.h, nil)
			if d := diff(want, got); len(d) > 0 {
				t.Errorf("%d pixels differ, first at %v", len(d), d[0])
			}
		})
	}
}

// A count that never decreases with the real part has a uniform interior
// whenever a rectangle's border is uniform, so the border heuristic is exact.
func TestScanDivideMatchesLineByLineOnMonotoneCounts(t *testing.T) {
	ramp := CounterFunc(func(c Complex) int { return int((c.Re+2)*3) + 1 })
	sizes := []image.Point{{33, 17}, {64, 64}, {5, 1}, {1, 7}, {2, 2}, {100, 3}}

	for _, sz := range sizes {
		want, _ := render(t, LineByLine, DefaultViewport(), sz.X, sz.Y, ramp)
		got, report := render(t, DivideAndConquer, DefaultViewport(), sz.X, sz.Y, ramp)
		if d := diff(want, got); len(d) > 0 {
			t.Errorf("%v: %d pixels differ, first at %v", sz, len(d), d[0])
		}
		if report.Writes != sz.X*sz.Y {
			t.Errorf("%v: writes = %d, want %d", sz, report.Writes, sz.X*sz.Y)
		}
	}
}

func TestScanDivideSkipsUniformInterior(t *testing.T) {
	flat := CounterFunc(func(Complex) int { return 3 })
	_, report := render(t, DivideAndConquer, DefaultViewport(), 20, 10, flat)
	// Only the 2·20 + 2·8 border pixels are evaluated.
	if report.Evaluations != 56 {
		t.Errorf("evaluations = %d, want 56", report.Evaluations)
	}
	if report.Writes != 200 {
		t.Errorf("writes = %d, want 200", report.Writes)
	}
}

// A single bright pixel fully enclosed by a uniform border is painted over
// by DivideAndConquer. This is the documented limit of the heuristic.
func TestScanDivideMissesEnclosedFeature(t *testing.T) {
	const n = 16
	v := DefaultViewport()
	spot := v.PixelToComplex(8, 8, n, n)
	island := CounterFunc(func(c Complex) int {
		if c == spot {
			return 7
		}
		return 0
	})

	exact, _ := render(t, LineByLine, v, n, n, island)
	approx, _ := render(t, DivideAndConquer, v, n, n, island)

	if got, want := exact.RGBAAt(8, 8), (Banded{}).Color(7); got != want {
		t.Fatalf("LineByLine (8,8) = %v, want %v", got, want)
	}
	d := diff(exact, approx)
	if len(d) != 1 || d[0] != image.Pt(8, 8) {
		t.Errorf("differences = %v, want only (8,8)", d)
	}
	if got := approx.RGBAAt(8, 8); got != InSet {
		t.Errorf("DivideAndConquer (8,8) = %v, want the border color", got)
	}
}

func TestScanEmptyRegion(t *testing.T) {
	for _, s := range Strategies {
		for _, sz := range []image.Point{{0, 0}, {0, 5}, {5, 0}} {
			buf := NewFrameBuffer(sz.X, sz.Y)
			calls := 0
			tg := NewTarget(DefaultViewport(), buf)
			tg.Dirty = func(image.Rectangle) { calls++ }
			report := s.Scan(context.Background(), tg)
			if report.Status != Completed || report.Writes != 0 || calls != 0 {
				t.Errorf("%v %v: status=%v writes=%d dirty=%d, want completed with no writes",
					s, sz, report.Status, report.Writes, calls)
			}
		}
	}

	report := LineByLine.Scan(context.Background(), &Target{Viewport: DefaultViewport()})
	if report.Status != Completed || report.Writes != 0 {
		t.Errorf("nil buffer: %+v", report)
	}
}

func TestScanAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, s := range Strategies {
		buf := NewFrameBuffer(8, 8)
		buf.Fill(buf.Bounds(), unpainted)
		report := s.Scan(ctx, NewTarget(DefaultViewport(), buf))
		if report.Status != Cancelled || report.Writes != 0 {
			t.Errorf("%v: status=%v writes=%d, want cancelled with no writes", s, report.Status, report.Writes)
		}
	}
}

// Cancelling after k notifications must stop the scan promptly and leave
// every pixel either untouched or holding a complete palette color.
func TestScanCancelMidway(t *testing.T) {
	const w, h = 48, 32
	v := NewViewport(C(-2, -1.25), C(0.75, 1.25))

	reference, _ := render(t, LineByLine, v, w, h, nil)
	valid := map[color.RGBA]bool{unpainted: true}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			valid[reference.RGBAAt(x, y)] = true
		}
	}

	for _, s := range Strategies {
		t.Run(s.String(), func(t *testing.T) {
			const k = 100
			_, full := render(t, s, v, w, h, nil)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			buf := NewFrameBuffer(w, h)
			buf.Fill(buf.Bounds(), unpainted)
			tg := NewTarget(v, buf)
			notified, writesAtCancel := 0, -1
			tg.Dirty = func(image.Rectangle) {
				notified++
				if notified == k {
					writesAtCancel = tg.writes
					cancel()
				}
			}

			report := s.Scan(ctx, tg)
			if report.Status != Cancelled {
				t.Fatalf("status = %v, want cancelled", report.Status)
			}
			if !errors.Is(ctx.Err(), context.Canceled) {
				t.Fatal("context was not cancelled")
			}
			if report.Writes >= full.Writes {
				t.Errorf("writes = %d, uncancelled scan writes %d: scan did not stop early", report.Writes, full.Writes)
			}
			if report.Writes != writesAtCancel {
				t.Errorf("writes = %d, %d at cancel: pixels written after cancellation", report.Writes, writesAtCancel)
			}
			if s == LineByLine && report.Writes != k {
				t.Errorf("writes = %d, want exactly %d", report.Writes, k)
			}
			if notified != k {
				t.Errorf("notifications after cancel: got %d, want %d", notified, k)
			}

			img := buf.Snapshot()
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if p := img.RGBAAt(x, y); !valid[p] {
						t.Fatalf("pixel (%d,%d) = %v is neither old nor a rendered color", x, y, p)
					}
				}
			}
		})
	}
}

func TestScanRestrictedRect(t *testing.T) {
	v := DefaultViewport()
	full, _ := render(t, LineByLine, v, 20, 20, nil)
	part := image.Rect(5, 3, 15, 12)

	for _, s := range Strategies {
		buf := NewFrameBuffer(20, 20)
		buf.Fill(buf.Bounds(), unpainted)
		tg := NewTarget(v, buf)
		tg.Rect = part
		s.Scan(context.Background(), tg)

		for y := 0; y < 20; y++ {
			for x := 0; x < 20; x++ {
				got := buf.RGBAAt(x, y)
				inside := image.Pt(x, y).In(part)
				if !inside && got != unpainted {
					t.Fatalf("%v: pixel (%d,%d) outside the rect was written", s, x, y)
				}
				if inside && s != DivideAndConquer && got != full.RGBAAt(x, y) {
					t.Fatalf("%v: pixel (%d,%d) = %v, want %v", s, x, y, got, full.RGBAAt(x, y))
				}
			}
		}
	}
}

func TestScanProgressivePreviewFirst(t *testing.T) {
	buf := NewFrameBuffer(40, 32)
	tg := NewTarget(DefaultViewport(), buf)
	var first []image.Rectangle
	tg.Dirty = func(r image.Rectangle) {
		if len(first) < 2 {
			first = append(first, r)
		}
	}
	ProgressiveRefinement.Scan(context.Background(), tg)

	want := []image.Rectangle{image.Rect(0, 0, 32, 32), image.Rect(32, 0, 40, 32)}
	if len(first) != 2 || first[0] != want[0] || first[1] != want[1] {
		t.Errorf("first dirty rects = %v, want %v", first, want)
	}
}

func TestScanMarksBufferDirty(t *testing.T) {
	buf := NewFrameBuffer(70, 10)
	LineByLine.Scan(context.Background(), NewTarget(DefaultViewport(), buf))
	if got := buf.TakeDirty(); len(got) != 2 {
		t.Errorf("TakeDirty() = %v, want two tiles", got)
	}
}

func TestFloorPow2(t *testing.T) {
	tests := map[int]int{-4: 0, 0: 0, 1: 1, 2: 2, 3: 2, 4: 4, 63: 32, 64: 64, 1000: 512}
	for n, want := range tests {
		if got := floorPow2(n); got != want {
			t.Errorf("floorPow2(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if got, err := ParseStrategy("PROGRESSIVE"); err != nil || got != ProgressiveRefinement {
		t.Errorf("ParseStrategy is case sensitive: %v, %v", got, err)
	}
	if _, err := ParseStrategy("spiral"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(spiral) error = %v, want ErrUnknownStrategy", err)
	}
	if got := Strategy(9).String(); got != "Strategy(9)" {
		t.Errorf("Strategy(9).String() = %q", got)
	}
}

func TestStrategyText(t *testing.T) {
	var s Strategy
	if err := s.UnmarshalText([]byte("divide")); err != nil || s != DivideAndConquer {
		t.Fatalf("UnmarshalText(divide) = %v, %v", s, err)
	}
	b, err := s.MarshalText()
	if err != nil || string(b) != "divide" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	if _, err := Strategy(-1).MarshalText(); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("MarshalText(-1) error = %v", err)
	}
}

func BenchmarkScan(b *testing.B) {
	v := NewViewport(C(-2, -1.25), C(0.75, 1.25))
	buf := NewFrameBuffer(160, 120)
	for _, s := range Strategies {
		b.Run(s.String(), func(b *testing.B) {
			tg := NewTarget(v, buf)
			for b.Loop() {
				s.Scan(context.Background(), tg)
			}
		})
	}
}
