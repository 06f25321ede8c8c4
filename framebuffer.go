package mandel

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/mandel/internal/tile"
)

// FrameBuffer is a width×height grid of opaque colors shared between the
// render loop, which writes it, and any number of readers.
//
// Each pixel is one packed 32-bit word accessed atomically, so a reader
// always observes either the previous or the new color of a pixel and never a
// mixture of channels. A FrameBuffer never changes size; the Controller
// allocates a new one on resize.
//
// FrameBuffer implements image.Image.
type FrameBuffer struct {
	width  int
	height int
	pix    []atomic.Uint32
	dirty  *tile.Dirty
}

// NewFrameBuffer allocates a buffer of the given dimensions. Negative
// dimensions are treated as zero.
func NewFrameBuffer(width, height int) *FrameBuffer {
	width, height = max(width, 0), max(height, 0)
	return &FrameBuffer{
		width:  width,
		height: height,
		pix:    make([]atomic.Uint32, width*height),
		dirty:  tile.NewDirty(width, height, tile.DefaultSize),
	}
}

// Width returns the number of columns.
func (b *FrameBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *FrameBuffer) Height() int { return b.height }

// Bounds implements image.Image.
func (b *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *FrameBuffer) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (b *FrameBuffer) At(x, y int) color.Color { return b.RGBAAt(x, y) }

// RGBAAt returns the color of pixel (x, y), or the zero color outside the
// buffer.
func (b *FrameBuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	return unpack(b.pix[y*b.width+x].Load())
}

// Set stores c at pixel (x, y). Writes outside the buffer are ignored.
func (b *FrameBuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x].Store(pack(c))
}

// Fill stores c at every pixel of r clipped to the buffer.
func (b *FrameBuffer) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(b.Bounds())
	v := pack(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.pix[y*b.width : (y+1)*b.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x].Store(v)
		}
	}
}

// Snapshot copies the buffer into a new image. Every pixel of the copy is a
// value that pixel held at some moment during the call.
func (b *FrameBuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	b.CopyTo(img.Pix)
	return img
}

// CopyTo writes the buffer as RGBA bytes into dst, which must hold at least
// 4·Width·Height bytes. It returns the number of bytes written.
func (b *FrameBuffer) CopyTo(dst []byte) int {
	n := min(len(b.pix), len(dst)/4)
	for i := 0; i < n; i++ {
		v := b.pix[i].Load()
		j := i * 4
		dst[j+0] = uint8(v >> 24)
		dst[j+1] = uint8(v >> 16)
		dst[j+2] = uint8(v >> 8)
		dst[j+3] = uint8(v)
	}
	return n * 4
}

// MarkDirty records r as changed for the next TakeDirty.
func (b *FrameBuffer) MarkDirty(r image.Rectangle) {
	b.dirty.MarkRect(r)
}

// MarkAllDirty records the whole buffer as changed, as when a presenter
// needs to upload it from scratch.
func (b *FrameBuffer) MarkAllDirty() {
	b.dirty.MarkAll()
}

// TakeDirty returns the tiles changed since the previous call and clears
// them. Tiles are 64×64 pixels, clipped at the right and bottom edges.
func (b *FrameBuffer) TakeDirty() []image.Rectangle {
	return b.dirty.Take()
}

func pack(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func unpack(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
