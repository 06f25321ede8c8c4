package export

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resamples src to width×height with Catmull-Rom filtering. When one
// dimension is zero or negative it is derived from the other, keeping the
// aspect ratio; when both are, or the size already matches, src is copied.
func Scale(src image.Image, width, height int) *image.RGBA {
	b := src.Bounds()
	switch {
	case b.Empty():
		return image.NewRGBA(image.Rectangle{})
	case width <= 0 && height <= 0:
		width, height = b.Dx(), b.Dy()
	case width <= 0:
		width = max(1, height*b.Dx()/b.Dy())
	case height <= 0:
		height = max(1, width*b.Dy()/b.Dx())
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == b.Dx() && height == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
