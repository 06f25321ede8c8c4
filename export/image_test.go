package export

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/mandel"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/text/language"
)

func TestScale(t *testing.T) {
	src := testImage() // 6×4

	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"explicit", 12, 8, image.Rect(0, 0, 12, 8)},
		{"width only", 3, 0, image.Rect(0, 0, 3, 2)},
		{"height only", 0, 8, image.Rect(0, 0, 12, 8)},
		{"unchanged", 0, 0, image.Rect(0, 0, 6, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(src, tt.w, tt.h)
			require.Equal(t, tt.want, got.Bounds())
		})
	}

	same := Scale(src, 6, 4)
	require.Equal(t, src.Pix, same.Pix)
	require.True(t, Scale(image.NewRGBA(image.Rectangle{}), 10, 10).Bounds().Empty())
}

func TestScaleUniform(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	teal := color.RGBA{G: 0x80, B: 0x80, A: 0xff}
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{teal.R, teal.G, teal.B, teal.A})
	}
	dst := Scale(src, 20, 20)
	require.Equal(t, teal, dst.RGBAAt(10, 10))
}

func TestAnnotateDrawsBand(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 60))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	require.NoError(t, Annotate(img, "re [-2, 2]"))

	bright := 0
	for y := 30; y < 60; y++ {
		for x := 0; x < 200; x++ {
			if img.RGBAAt(x, y).R > 0x80 {
				bright++
			}
		}
	}
	require.Positive(t, bright, "caption text should be drawn in the bottom band")
	require.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(100, 0), "top of the image must stay untouched")

	require.NoError(t, Annotate(img, ""))
	require.NoError(t, Annotate(image.NewRGBA(image.Rectangle{}), "x"))
}

func TestCaption(t *testing.T) {
	v := mandel.NewViewport(mandel.C(-0.75, 0.1), mandel.C(-0.749, 0.101))

	en := Caption(language.English, v, 640, 480)
	require.True(t, strings.HasPrefix(en, "re [-0.75, -0.749]"), en)
	require.Contains(t, en, "zoom 4,000×")

	de := Caption(language.German, v, 640, 480)
	require.Contains(t, de, "zoom 4.000×")
}

func TestMagnification(t *testing.T) {
	require.Equal(t, 1, Magnification(mandel.DefaultViewport()))
	require.Equal(t, 2, Magnification(mandel.NewViewport(mandel.C(-1, -1), mandel.C(1, 1))))
	require.Equal(t, 1, Magnification(mandel.NewViewport(mandel.C(-8, -8), mandel.C(8, 8))))
	require.Equal(t, 1, Magnification(mandel.NewViewport(mandel.C(0, 0), mandel.C(0, 1))))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	path, err := Save(filepath.Join(dir, "view.bmp"), src, mandel.DefaultViewport(), Options{
		Width:    200,
		Annotate: true,
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
}
