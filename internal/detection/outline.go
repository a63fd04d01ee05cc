package detection

import (
	"fmt"
	"image"

	"github.com/ironsheep/shape-detector/internal/imaging"
)

// Backend names accepted by NewOutliner.
const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

// Outliner turns a frame into simplified outer-boundary polygons, one per
// contour, in discovery order.
type Outliner interface {
	Outline(img image.Image) ([]Polygon, error)
}

// Native is the pure-Go outliner: ExtractEdges, TraceContours, then
// Approximate on every contour. It never returns an error.
type Native struct{}

// Outline implements Outliner.
func (Native) Outline(img image.Image) ([]Polygon, error) {
	contours := TraceContours(imaging.ExtractEdges(img))
	polygons := make([]Polygon, 0, len(contours))
	for _, c := range contours {
		polygons = append(polygons, Approximate(c))
	}
	return polygons, nil
}

// NewOutliner returns the outliner for a backend name. The empty name
// selects the native backend. The OpenCV backend is only available in
// binaries built with the gocv tag.
func NewOutliner(backend string) (Outliner, error) {
	switch backend {
	case "", BackendNative:
		return Native{}, nil
	case BackendOpenCV:
		return newOpenCV()
	default:
		return nil, fmt.Errorf("unknown detection backend %q", backend)
	}
}
