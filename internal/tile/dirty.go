// Package tile coalesces per-pixel damage into fixed-size square tiles.
package tile

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DefaultSize is the edge length of a tile in pixels.
const DefaultSize = 64

// Dirty records which tiles of a pixel grid changed since the last Take.
//
// The state is a bitmap with one bit per tile packed into uint64 words, so
// the writer marks damage with an atomic OR while a reader drains it with an
// atomic swap. All methods are safe for concurrent use.
type Dirty struct {
	words  []atomic.Uint64
	bounds image.Rectangle
	size   int
	cols   int
	rows   int
}

// NewDirty returns a tracker for a width×height grid split into size×size
// tiles. It returns nil when any dimension is not positive.
func NewDirty(width, height, size int) *Dirty {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	return &Dirty{
		words:  make([]atomic.Uint64, (cols*rows+63)/64),
		bounds: image.Rect(0, 0, width, height),
		size:   size,
		cols:   cols,
		rows:   rows,
	}
}

func (d *Dirty) mark(tx, ty int) {
	idx := ty*d.cols + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect marks every tile intersecting r. Parts of r outside the grid are
// ignored.
func (d *Dirty) MarkRect(r image.Rectangle) {
	if d == nil {
		return
	}
	r = r.Intersect(d.bounds)
	if r.Empty() {
		return
	}
	tx0, ty0 := r.Min.X/d.size, r.Min.Y/d.size
	tx1, ty1 := (r.Max.X-1)/d.size, (r.Max.Y-1)/d.size
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			d.mark(tx, ty)
		}
	}
}

// MarkAll marks the whole grid.
func (d *Dirty) MarkAll() {
	if d == nil {
		return
	}
	total := d.cols * d.rows
	full := total / 64
	for i := 0; i < full; i++ {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[full].Store(1<<rem - 1)
	}
}

// Take clears the marks and returns the pixel rectangles of the tiles that
// were set, in row-major order. Edge tiles are clipped to the grid.
func (d *Dirty) Take() []image.Rectangle {
	if d == nil {
		return nil
	}
	var out []image.Rectangle
	for wi := range d.words {
		word := d.words[wi].Swap(0)
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			word &^= 1 << bit
			idx := wi*64 + bit
			tx, ty := idx%d.cols, idx/d.cols
			r := image.Rect(tx*d.size, ty*d.size, (tx+1)*d.size, (ty+1)*d.size)
			out = append(out, r.Intersect(d.bounds))
		}
	}
	return out
}
