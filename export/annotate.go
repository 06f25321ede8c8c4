package export

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CaptionSize is the font size of captions in points at 72 DPI.
const CaptionSize = 12

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func captionFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = fmt.Errorf("export: parse caption font: %w", err)
			return
		}
		face, faceErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    CaptionSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return face, faceErr
}

// Annotate draws caption in white on a translucent band along the bottom
// edge of img. Text wider than the image is clipped.
func Annotate(img draw.Image, caption string) error {
	if caption == "" || img.Bounds().Empty() {
		return nil
	}
	f, err := captionFace()
	if err != nil {
		return err
	}

	m := f.Metrics()
	pad := 4
	band := (m.Ascent + m.Descent).Ceil() + 2*pad
	b := img.Bounds()
	area := image.Rect(b.Min.X, max(b.Min.Y, b.Max.Y-band), b.Max.X, b.Max.Y)
	draw.Draw(img, area, image.NewUniform(color.RGBA{A: 0xa0}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(area.Min.X+pad, area.Max.Y-pad-m.Descent.Ceil()),
	}
	d.DrawString(caption)
	return nil
}
