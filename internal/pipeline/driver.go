package pipeline

import (
	"image"
	"log/slog"
	"time"

	"github.com/ironsheep/shape-detector/internal/detection"
	"github.com/ironsheep/shape-detector/internal/imaging"
	"github.com/ironsheep/shape-detector/internal/log"
)

// Driver turns frames into detection events and actuation commands.
// It holds no per-frame state and is safe for concurrent use when its
// sinks are.
type Driver struct {
	outliner detection.Outliner
	shapes   ShapeSink
	servo    ServoSink
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for detections and sink failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithClock replaces time.Now as the source of event timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithOutliner replaces the native outliner.
func WithOutliner(o detection.Outliner) Option {
	return func(d *Driver) {
		d.outliner = o
	}
}

// New creates a driver publishing to the given sinks. Either sink may be
// nil, in which case results are only returned.
func New(shapes ShapeSink, servo ServoSink, opts ...Option) *Driver {
	d := &Driver{
		outliner: detection.Native{},
		shapes:   shapes,
		servo:    servo,
		logger:   log.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ProcessFrame runs edge extraction, contour tracing, approximation,
// classification and actuation over img.
//
// Every contour yields one DetectionEvent. A Circle also yields an
// ActuationCommand, published after its event. Sink errors are logged and
// do not stop the remaining results from being published. An outliner
// failure is logged and produces an empty result.
func (d *Driver) ProcessFrame(img image.Image) *Result {
	res := &Result{
		Events:   make([]DetectionEvent, 0),
		Commands: make([]ActuationCommand, 0),
		Shapes:   make([]Shape, 0),
	}

	polygons, err := d.outliner.Outline(img)
	if err != nil {
		d.logger.Error("outline failed", "error", err)
		return res
	}

	origin := img.Bounds().Min
	for _, poly := range polygons {
		label := detection.Classify(poly)
		ev := DetectionEvent{Label: label, Timestamp: d.now()}

		res.Events = append(res.Events, ev)
		res.Shapes = append(res.Shapes, describe(img, origin, label, poly))

		d.logger.Info("shape detected",
			"label", label.String(),
			"vertices", len(poly),
			"at", ev.Timestamp.Format(time.RFC3339Nano))
		d.publishShape(ev)

		if cmd, ok := detection.Actuate(label); ok {
			res.Commands = append(res.Commands, cmd)
			d.publishServo(cmd)
		}
	}

	return res
}

func (d *Driver) publishShape(ev DetectionEvent) {
	if d.shapes == nil {
		return
	}
	if err := d.shapes.PublishShape(ev); err != nil {
		d.logger.Warn("publish failed", "sink", "shape", "label", ev.Label.String(), "error", err)
	}
}

func (d *Driver) publishServo(cmd ActuationCommand) {
	if d.servo == nil {
		return
	}
	if err := d.servo.PublishServo(cmd); err != nil {
		d.logger.Warn("publish failed", "sink", "servo", "angle", cmd.AngleDegrees, "error", err)
	}
}

// describe builds the Shape for a polygon. Polygon coordinates are relative
// to the frame origin; color sampling uses the frame's own coordinates.
func describe(img image.Image, origin image.Point, label detection.Label, poly detection.Polygon) Shape {
	b := poly.Bounds()
	qw := (b.X2 - b.X1) / 4
	qh := (b.Y2 - b.Y1) / 4
	center := imaging.Region{
		X1: origin.X + b.X1 + qw,
		Y1: origin.Y + b.Y1 + qh,
		X2: origin.X + b.X2 - qw + 1,
		Y2: origin.Y + b.Y2 - qh + 1,
	}

	var fill string
	if b.X2 > b.X1 && b.Y2 > b.Y1 {
		fill = imaging.MeanColorHex(img, center)
	}

	return Shape{
		Label:     label,
		Vertices:  len(poly),
		Polygon:   poly,
		Bounds:    b,
		FillColor: fill,
	}
}
