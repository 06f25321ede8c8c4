package mandel

import "image/color"

// InSet is the color of points whose escape count is 0.
var InSet = color.RGBA{A: 0xff}

// Palette maps an escape count to a color. Implementations must be pure and
// total over [0, MaxIterations).
type Palette interface {
	Color(count int) color.RGBA
}

// PaletteFunc adapts an ordinary function to the Palette interface.
type PaletteFunc func(count int) color.RGBA

// Color calls f(count).
func (f PaletteFunc) Color(count int) color.RGBA { return f(count) }

// Banded is the default palette. Each channel runs a triangle wave over the
// count with its own period, so neighbouring counts get similar colors while
// distant ones remain distinguishable.
type Banded struct{}

// Color implements Palette.
func (Banded) Color(count int) color.RGBA {
	if count == 0 {
		return InSet
	}
	return color.RGBA{
		R: 0xff - triangle(count),
		G: triangle(5 * count),
		B: triangle(count / 8),
		A: 0xff,
	}
}

// Grayscale shades escaping points from dark to light and back with a
// period of 128 counts.
type Grayscale struct{}

// Color implements Palette.
func (Grayscale) Color(count int) color.RGBA {
	if count == 0 {
		return InSet
	}
	v := triangle(4 * count)
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// triangle folds v into [0, 255]: rising on even bands of 256, falling on
// odd ones.
func triangle(v int) uint8 {
	if v < 0 {
		v = -v
	}
	m := uint8(v % 256)
	if (v/256)%2 == 1 {
		return 0xff - m
	}
	return m
}

// PaletteByName returns the palette registered under name.
func PaletteByName(name string) (Palette, bool) {
	switch name {
	case "", "banded":
		return Banded{}, true
	case "gray", "grayscale":
		return Grayscale{}, true
	}
	return nil, false
}
