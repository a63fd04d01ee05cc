package detection

import (
	"encoding/json"
	"fmt"
)

// Label is the shape class assigned to a polygon.
type Label int

// The label set is closed.
const (
	Unknown Label = iota
	Square
	Circle
)

var labelNames = [...]string{
	Unknown: "Unknown",
	Square:  "Square",
	Circle:  "Circle",
}

// String returns the wire name of the label: "Unknown", "Square" or "Circle".
func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// MarshalJSON encodes the label as its wire name.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the wire names produced by MarshalJSON.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range labelNames {
		if name == s {
			*l = Label(i)
			return nil
		}
	}
	return fmt.Errorf("unknown shape label %q", s)
}

// Classify labels a polygon by its vertex count alone:
//
//   - exactly 4 vertices: Square
//   - more than 4 vertices: Circle
//   - fewer than 4 vertices: Unknown
//
// Side lengths, angles and convexity are not inspected, so any
// quadrilateral is a Square and any polygon with five or more vertices
// (pentagons and stars included) is a Circle.
func Classify(p Polygon) Label {
	switch n := len(p); {
	case n == 4:
		return Square
	case n > 4:
		return Circle
	default:
		return Unknown
	}
}
