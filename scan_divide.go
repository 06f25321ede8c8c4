package mandel

import (
	"context"
	"image"
	"image/color"
)

// scanDivide renders the inclusive rectangle [left, right]×[top, bottom].
//
// It evaluates and writes the border of the rectangle. When every border
// pixel has the same color the interior is filled with that color without
// being evaluated; otherwise the rectangle is inset by one pixel and its four
// quadrants are rendered recursively.
//
// The fill is an approximation: a uniform border does not imply a uniform
// interior, and any structure fully enclosed by the border (a thin filament
// or a small island of the set) is painted over. Use LineByLine or
// ProgressiveRefinement when every pixel must be exact.
func scanDivide(ctx context.Context, t *Target, left, top, right, bottom int) bool {
	if ctx.Err() != nil {
		return false
	}
	if right < left || bottom < top {
		return true
	}

	b := border{t: t}
	for x := left; x <= right; x++ {
		if !b.visit(ctx, x, top) {
			return false
		}
	}
	if bottom > top {
		for x := left; x <= right; x++ {
			if !b.visit(ctx, x, bottom) {
				return false
			}
		}
	}
	for y := top + 1; y < bottom; y++ {
		if !b.visit(ctx, left, y) {
			return false
		}
		if right > left && !b.visit(ctx, right, y) {
			return false
		}
	}

	l, tp, r, bt := left+1, top+1, right-1, bottom-1
	if r < l || bt < tp {
		return true
	}
	if b.uniform {
		return t.fill(ctx, image.Rect(l, tp, r+1, bt+1), b.color)
	}

	mx, my := (l+r)/2, (tp+bt)/2
	return scanDivide(ctx, t, l, tp, mx, my) &&
		scanDivide(ctx, t, mx+1, tp, r, my) &&
		scanDivide(ctx, t, l, my+1, mx, bt) &&
		scanDivide(ctx, t, mx+1, my+1, r, bt)
}

// border accumulates the pixels of one rectangle outline and whether they
// all share a color.
type border struct {
	t       *Target
	color   color.RGBA
	seen    bool
	uniform bool
}

func (b *border) visit(ctx context.Context, x, y int) bool {
	if ctx.Err() != nil {
		return false
	}
	c := b.t.ColorAt(x, y)
	b.t.set(x, y, c)
	switch {
	case !b.seen:
		b.color, b.seen, b.uniform = c, true, true
	case c != b.color:
		b.uniform = false
	}
	return true
}
