// Package detection finds outer shape boundaries in an edge mask and
// classifies them.
//
// # Pipeline
//
//  1. TraceContours: Suzuki-Abe border following, outer borders only, with
//     straight runs compacted to their endpoints
//  2. Approximate: closed Douglas-Peucker with a tolerance of 4% of the
//     contour perimeter
//  3. Classify: vertex count to Label (4 = Square, more = Circle, fewer =
//     Unknown)
//  4. Actuate: static Label to Command table (Circle = 90 degrees)
//
// Native wires steps 1-2 behind the Outliner interface together with
// imaging.ExtractEdges. Binaries built with the gocv tag can use the OpenCV
// backend instead.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Limitations
//
// Classification looks at vertex count only. Irregular quadrilaterals are
// reported as Square and pentagons, hexagons and irregular blobs as Circle.
// Every function is stateless; nothing is remembered between frames.
//
// A gap in the edge mask, typically at an acute corner, leaves an open
// chain instead of a closed outline. The tracer walks such a chain out and
// back, so its polygon can repeat vertices and be classified by the doubled
// count; a triangle with one broken corner is reported as Square plus a
// short Unknown fragment.
package detection
