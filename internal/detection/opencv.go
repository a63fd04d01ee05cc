//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/shape-detector/internal/imaging"
)

// OpenCV outlines frames with OpenCV's Canny, findContours and
// approxPolyDP, using the same thresholds and tolerance as Native. It is
// the reference the native backend is checked against.
type OpenCV struct{}

func newOpenCV() (Outliner, error) {
	return OpenCV{}, nil
}

// Outline implements Outliner.
func (OpenCV) Outline(img image.Image) ([]Polygon, error) {
	// Both backends share the luminance step, which ignores alpha.
	gray, err := gocv.ImageGrayToMatGray(imaging.Intensity(img))
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame to mat: %w", err)
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, imaging.EdgeThresholdLow, imaging.EdgeThresholdHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	polygons := make([]Polygon, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		approx := gocv.ApproxPolyDP(c, ApproxEpsilonRatio*gocv.ArcLength(c, true), true)

		pts := approx.ToPoints()
		poly := make(Polygon, len(pts))
		for j, p := range pts {
			poly[j] = Point{X: p.X, Y: p.Y}
		}
		approx.Close()

		polygons = append(polygons, poly)
	}
	return polygons, nil
}
