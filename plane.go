package mandel

import (
	"context"
	"image"
	"image/color"
)

// Target is everything one scan needs: the view to render, how to color it
// and where to put the pixels. The Controller builds a fresh Target for every
// scan from a snapshot of its state; nothing in a Target changes while a
// scan runs.
type Target struct {
	Viewport Viewport
	Counter  Counter
	Palette  Palette
	Buffer   *FrameBuffer

	// Rect restricts the scan to part of the buffer. The zero rectangle
	// means the whole buffer.
	Rect image.Rectangle

	// Dirty, if set, is called after every write with the pixels it
	// touched.
	Dirty func(r image.Rectangle)

	writes int
	evals  int
}

// NewTarget returns a Target covering the whole of buf with the default
// evaluator and palette.
func NewTarget(v Viewport, buf *FrameBuffer) *Target {
	return &Target{
		Viewport: v,
		Counter:  DefaultEvaluator(),
		Palette:  Banded{},
		Buffer:   buf,
	}
}

// Region returns the pixels the scan must cover: Rect clipped to the buffer.
func (t *Target) Region() image.Rectangle {
	if t.Buffer == nil {
		return image.Rectangle{}
	}
	b := t.Buffer.Bounds()
	if t.Rect.Empty() {
		return b
	}
	return t.Rect.Intersect(b)
}

// ColorAt evaluates the color of pixel (x, y). Coordinates are always
// mapped against the full buffer, so a restricted Rect renders the same
// pixels a full scan would.
func (t *Target) ColorAt(x, y int) color.RGBA {
	t.evals++
	c := t.Viewport.PixelToComplex(x, y, t.Buffer.Width(), t.Buffer.Height())
	return t.Palette.Color(t.Counter.Count(c))
}

func (t *Target) set(x, y int, c color.RGBA) {
	t.Buffer.Set(x, y, c)
	t.writes++
	t.touched(image.Rect(x, y, x+1, y+1))
}

// fill paints r one pixel at a time, polling ctx before each write. It
// reports false if the scan was cancelled part way.
func (t *Target) fill(ctx context.Context, r image.Rectangle, c color.RGBA) bool {
	r = r.Intersect(t.Region())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ctx.Err() != nil {
				last := y
				if x > r.Min.X {
					last++
				}
				t.touched(image.Rect(r.Min.X, r.Min.Y, r.Max.X, last))
				return false
			}
			t.Buffer.Set(x, y, c)
			t.writes++
		}
	}
	t.touched(r)
	return true
}

func (t *Target) touched(r image.Rectangle) {
	if r.Empty() {
		return
	}
	t.Buffer.MarkDirty(r)
	if t.Dirty != nil {
		t.Dirty(r)
	}
}
