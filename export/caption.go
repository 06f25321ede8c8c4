package export

import (
	"math"

	"github.com/gogpu/mandel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Caption describes view v rendered at width×height, with numbers formatted
// for tag.
func Caption(tag language.Tag, v mandel.Viewport, width, height int) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("re [%.6g, %.6g]  im [%.6g, %.6g]  %d×%d  zoom %d×",
		v.Min.Re, v.Max.Re, v.Min.Im, v.Max.Im, width, height, Magnification(v))
}

// Magnification returns how many times narrower v is than the default view,
// rounded to the nearest integer and at least 1.
func Magnification(v mandel.Viewport) int {
	w := v.Width()
	if w <= 0 {
		return 1
	}
	return max(1, int(math.Round(mandel.DefaultViewport().Width()/w)))
}
