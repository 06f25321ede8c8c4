package mandel

import "math"

// Viewport is the rectangular region of the complex plane mapped onto the
// pixel buffer. Min holds the smallest real and imaginary parts, Max the
// largest; NewViewport establishes this for any pair of opposite corners.
//
// A Viewport is a value. The Controller replaces its viewport wholesale, so a
// copy taken by a scan never changes underneath it.
type Viewport struct {
	Min, Max Complex
}

// Default bounds of the canonical view: real and imaginary parts in [-2, 2].
const (
	DefaultMinRe = -2.0
	DefaultMinIm = -2.0
	DefaultMaxRe = 2.0
	DefaultMaxIm = 2.0
)

// DefaultViewport returns the canonical [-2,2]×[-2,2] view.
func DefaultViewport() Viewport {
	return Viewport{
		Min: Complex{Re: DefaultMinRe, Im: DefaultMinIm},
		Max: Complex{Re: DefaultMaxRe, Im: DefaultMaxIm},
	}
}

// NewViewport returns the viewport spanned by two opposite corners, given in
// any order.
func NewViewport(a, b Complex) Viewport {
	return Viewport{
		Min: Complex{Re: math.Min(a.Re, b.Re), Im: math.Min(a.Im, b.Im)},
		Max: Complex{Re: math.Max(a.Re, b.Re), Im: math.Max(a.Im, b.Im)},
	}
}

// Normalized returns v with its corners reordered so that Min ≤ Max on both
// axes.
func (v Viewport) Normalized() Viewport {
	return NewViewport(v.Min, v.Max)
}

// Equal reports whether v and w have identical bounds.
func (v Viewport) Equal(w Viewport) bool {
	return v.Min == w.Min && v.Max == w.Max
}

// IsDefault reports whether v is the canonical default view.
func (v Viewport) IsDefault() bool {
	return v.Equal(DefaultViewport())
}

// Width returns the extent of the real axis.
func (v Viewport) Width() float64 {
	return v.Max.Re - v.Min.Re
}

// Height returns the extent of the imaginary axis.
func (v Viewport) Height() float64 {
	return v.Max.Im - v.Min.Im
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() Complex {
	return Complex{
		Re: v.Min.Re + v.Width()/2,
		Im: v.Min.Im + v.Height()/2,
	}
}

// PixelToReal maps a pixel column to the real part it represents in a buffer
// of the given width. Column 0 maps to Min.Re and column width to Max.Re.
// A degenerate real axis (Min.Re == Max.Re) maps every column to Min.Re.
func (v Viewport) PixelToReal(x, width int) float64 {
	if v.Min.Re == v.Max.Re || width <= 0 {
		return v.Min.Re
	}
	frac := float64(x) / float64(width)
	return lerp(v.Min.Re, v.Max.Re, frac)
}

// PixelToImag maps a pixel row to the imaginary part it represents in a
// buffer of the given height. Row 0 is the top of the screen and maps to
// Max.Im; row height maps to Min.Im.
func (v Viewport) PixelToImag(y, height int) float64 {
	if v.Min.Im == v.Max.Im || height <= 0 {
		return v.Min.Im
	}
	frac := 1 - float64(y)/float64(height)
	return lerp(v.Min.Im, v.Max.Im, frac)
}

// PixelToComplex maps pixel (x, y) of a width×height buffer to the point it
// represents.
func (v Viewport) PixelToComplex(x, y, width, height int) Complex {
	return Complex{
		Re: v.PixelToReal(x, width),
		Im: v.PixelToImag(y, height),
	}
}

// lerp interpolates between a and b. The endpoints are returned exactly for
// t == 0 and t == 1, which a + t*(b-a) does not guarantee for t == 1.
func lerp(a, b, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + t*(b-a)
}
