package export

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions without an encoder.
var ErrUnsupportedFormat = errors.New("export: unsupported image format")

// Format is an image file format.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the canonical file extension of f, including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	}
	return "." + f.String()
}

// ParseFormat returns the format named by an extension or format name, with
// or without a leading dot. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Resolve returns the path a snapshot will be written to and its format.
// A path without an extension gets ".png" appended.
func Resolve(path string) (string, Format, error) {
	ext := filepath.Ext(path)
	if ext == "" || ext == filepath.Base(path) {
		return path + PNG.Ext(), PNG, nil
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", 0, err
	}
	return path, f, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

// WriteFile encodes img into the file at path, choosing the format from the
// extension. It returns the path actually written.
func WriteFile(path string, img image.Image) (written string, err error) {
	path, f, err := Resolve(path)
	if err != nil {
		return "", err
	}
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := Encode(out, img, f); err != nil {
		return "", fmt.Errorf("export: encode %s: %w", path, err)
	}
	return path, nil
}
