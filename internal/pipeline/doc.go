// Package pipeline runs the shape stages over a frame and forwards the
// results to injected sinks.
//
// A Driver is stateless across frames: the same frame under the same clock
// always yields the same Result. Each outer contour produces exactly one
// DetectionEvent, Unknown included, and a Circle additionally produces an
// ActuationCommand. Results are delivered to the sinks before ProcessFrame
// returns.
//
// # Usage
//
//	d := pipeline.New(shapeSink, servoSink, pipeline.WithLogger(logger))
//	res := d.ProcessFrame(img)
//	for _, ev := range res.Events {
//	    fmt.Println(ev.Label)
//	}
package pipeline
