package mandel

import (
	"context"
	"image"
)

// scanLines evaluates r top to bottom, left to right, one pixel at a time.
func scanLines(ctx context.Context, t *Target, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ctx.Err() != nil {
				return false
			}
			t.set(x, y, t.ColorAt(x, y))
		}
	}
	return true
}
