// Package export writes snapshots of the frame buffer to image files.
//
// The encoder is picked from the file extension (png, jpg/jpeg, gif, bmp,
// tif/tiff); a name without an extension is saved as PNG with ".png"
// appended. Snapshots can be resampled to a different size and captioned
// with the bounds of the view they show.
package export
