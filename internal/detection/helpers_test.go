package detection

import (
	"image"
	"image/color"
	"math"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createFilledRectangleImage draws a black filled rectangle on white.
// The rectangle covers [x1,x2] x [y1,y2] inclusive.
func createFilledRectangleImage(width, height, x1, y1, x2, y2 int) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// createFilledCircleImage draws a black filled disk on white.
func createFilledCircleImage(width, height, cx, cy, radius int) *image.RGBA {
	img := createTestImage(width, height, color.White)
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

// createFilledTriangleImage draws a black filled isosceles triangle on
// white with its apex at (cx, top) and its base on row bottom. The sides
// widen by one pixel every two rows.
func createFilledTriangleImage(width, height, cx, top, bottom int) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := top; y <= bottom; y++ {
		half := (y - top) / 2
		for x := cx - half; x <= cx+half; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// createMask builds a binary mask with the given pixels set.
func createMask(width, height int, pts ...Point) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for _, p := range pts {
		mask.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}
	return mask
}

// fillMask sets every pixel of [x1,x2] x [y1,y2] inclusive.
func fillMask(mask *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			mask.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

// outlineMask sets the 1-pixel border of [x1,x2] x [y1,y2].
func outlineMask(mask *image.Gray, x1, y1, x2, y2 int) {
	for x := x1; x <= x2; x++ {
		mask.SetGray(x, y1, color.Gray{Y: 255})
		mask.SetGray(x, y2, color.Gray{Y: 255})
	}
	for y := y1; y <= y2; y++ {
		mask.SetGray(x1, y, color.Gray{Y: 255})
		mask.SetGray(x2, y, color.Gray{Y: 255})
	}
}

// densify returns a closed contour visiting every vertex with the
// intermediate integer points of each edge filled in.
func densify(vertices ...Point) Contour {
	out := make(Contour, 0)
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		steps := max(absInt(b.X-a.X), absInt(b.Y-a.Y))
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, Point{
				X: int(math.Round(float64(a.X) + t*float64(b.X-a.X))),
				Y: int(math.Round(float64(a.Y) + t*float64(b.Y-a.Y))),
			})
		}
	}
	return out
}

// regularPolygon returns the integer vertices of a regular n-gon.
func regularPolygon(n int, cx, cy, radius float64) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{
			X: int(math.Round(cx + radius*math.Cos(a))),
			Y: int(math.Round(cy + radius*math.Sin(a))),
		}
	}
	return pts
}

func containsPoint(c Contour, p Point) bool {
	for _, q := range c {
		if q == p {
			return true
		}
	}
	return false
}
