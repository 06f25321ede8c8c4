package mandel

import (
	"context"
	"image"
)

// scanProgressive paints r as a grid of blocks colored by their top-left
// sample, starting with the largest power of two that fits the shorter side
// of r and halving until blocks are single pixels.
//
// A block whose top-left corner lies on the previous, twice as coarse grid
// already carries the right sample, so each pass only paints the blocks that
// the finer grid introduces. The last pass leaves every pixel with its own
// sample, identical to a line-by-line scan.
func scanProgressive(ctx context.Context, t *Target, r image.Rectangle) bool {
	first := true
	for size := floorPow2(min(r.Dx(), r.Dy())); size > 0; size /= 2 {
		coarse := size * 2
		for y := r.Min.Y; y < r.Max.Y; y += size {
			for x := r.Min.X; x < r.Max.X; x += size {
				if ctx.Err() != nil {
					return false
				}
				if !first && (x-r.Min.X)%coarse == 0 && (y-r.Min.Y)%coarse == 0 {
					continue
				}
				c := t.ColorAt(x, y)
				if size == 1 {
					t.set(x, y, c)
					continue
				}
				if !t.fill(ctx, image.Rect(x, y, x+size, y+size), c) {
					return false
				}
			}
		}
		first = false
	}
	return true
}

// floorPow2 returns the largest power of two not above n, or 0 for n < 1.
func floorPow2(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p <= n/2 {
		p *= 2
	}
	return p
}
