package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle in source-image pixel coordinates.
// (X1, Y1) is inclusive, (X2, Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Empty reports whether the region selects no pixels.
func (r Region) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// NormalizeOptions controls the preprocessing applied to a decoded frame
// before it reaches the shape pipeline.
type NormalizeOptions struct {
	// ROI restricts processing to a region. An empty region keeps the whole frame.
	ROI Region

	// MaxWidth downscales frames wider than this, preserving aspect ratio.
	// Zero disables downscaling.
	MaxWidth int
}

// Normalize crops and downscales a frame according to opts.
//
// With zero options the input image is returned unchanged. A region that
// does not intersect the frame is ignored. The result of any crop or resize
// is an *image.NRGBA with its origin at (0,0).
func Normalize(img image.Image, opts NormalizeOptions) image.Image {
	out := img

	if !opts.ROI.Empty() {
		roi := image.Rect(opts.ROI.X1, opts.ROI.Y1, opts.ROI.X2, opts.ROI.Y2).Intersect(img.Bounds())
		if !roi.Empty() {
			out = imaging.Crop(out, roi)
		}
	}

	if opts.MaxWidth > 0 && out.Bounds().Dx() > opts.MaxWidth {
		out = imaging.Resize(out, opts.MaxWidth, 0, imaging.Lanczos)
	}

	return out
}

