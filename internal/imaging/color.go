package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MeanColorHex returns the average color of a region as "#rrggbb".
//
// The region is clipped to the image; an empty intersection yields "".
// Averaging happens in linear RGB so that anti-aliased borders do not skew
// the result toward dark values.
func MeanColorHex(img image.Image, r Region) string {
	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Intersect(img.Bounds())
	if rect.Empty() {
		return ""
	}

	var sr, sg, sb float64
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			lr, lg, lb := c.LinearRgb()
			sr += lr
			sg += lg
			sb += lb
			n++
		}
	}
	if n == 0 {
		return ""
	}

	f := float64(n)
	return colorful.LinearRgb(sr/f, sg/f, sb/f).Clamped().Hex()
}
