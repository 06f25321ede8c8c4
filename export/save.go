package export

import (
	"image"

	"github.com/gogpu/mandel"
	"golang.org/x/text/language"
)

// Options controls how Save post-processes a snapshot.
type Options struct {
	// Width and Height resample the snapshot; zero keeps the buffer size.
	Width, Height int

	// Annotate captions the image with the view bounds.
	Annotate bool

	// Language selects number formatting in the caption. The zero Tag
	// means English.
	Language language.Tag
}

// Save writes snapshot img of view v to path and returns the path written.
func Save(path string, img *image.RGBA, v mandel.Viewport, opts Options) (string, error) {
	if opts.Width > 0 || opts.Height > 0 {
		img = Scale(img, opts.Width, opts.Height)
	}
	if opts.Annotate {
		tag := opts.Language
		if tag == language.Und {
			tag = language.English
		}
		b := img.Bounds()
		if err := Annotate(img, Caption(tag, v, b.Dx(), b.Dy())); err != nil {
			return "", err
		}
	}
	return WriteFile(path, img)
}
