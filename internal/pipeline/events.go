package pipeline

import (
	"time"

	"github.com/ironsheep/shape-detector/internal/detection"
)

// DetectionEvent reports one classified contour.
type DetectionEvent struct {
	Label     detection.Label `json:"label"`
	Timestamp time.Time       `json:"timestamp"`
}

// ActuationCommand is the servo instruction derived from a detection.
type ActuationCommand = detection.Command

// Shape is the per-contour detail behind a DetectionEvent.
type Shape struct {
	// Label is the assigned class.
	Label detection.Label `json:"label"`

	// Vertices is the vertex count the label was derived from.
	Vertices int `json:"vertices"`

	// Polygon holds the simplified outline in frame coordinates.
	Polygon detection.Polygon `json:"polygon"`

	// Bounds is the bounding box of Polygon.
	Bounds detection.Bounds `json:"bounds"`

	// FillColor is the mean color of the central half of Bounds,
	// "#rrggbb", or empty when the box has no area.
	FillColor string `json:"fill_color,omitempty"`
}

// Result collects everything one frame produced, in contour order.
type Result struct {
	Events   []DetectionEvent   `json:"events"`
	Commands []ActuationCommand `json:"commands"`
	Shapes   []Shape            `json:"shapes"`
}

// ShapeSink receives detection events.
type ShapeSink interface {
	PublishShape(DetectionEvent) error
}

// ServoSink receives actuation commands.
type ServoSink interface {
	PublishServo(ActuationCommand) error
}

// ShapeSinkFunc adapts a function to ShapeSink.
type ShapeSinkFunc func(DetectionEvent) error

// PublishShape calls f(ev).
func (f ShapeSinkFunc) PublishShape(ev DetectionEvent) error {
	return f(ev)
}

// ServoSinkFunc adapts a function to ServoSink.
type ServoSinkFunc func(ActuationCommand) error

// PublishServo calls f(cmd).
func (f ServoSinkFunc) PublishServo(cmd ActuationCommand) error {
	return f(cmd)
}
