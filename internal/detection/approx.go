package detection

import "math"

// ApproxEpsilonRatio is the polygon tolerance as a fraction of the contour
// perimeter. Scaling by perimeter makes simplification independent of shape
// size.
const ApproxEpsilonRatio = 0.04

// Polygon is a simplified contour. Its vertices are a subset of the source
// contour points, in contour order, and the polygon is implicitly closed.
type Polygon []Point

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// X1/Y1 are the minimum coordinates and X2/Y2 the maximum coordinates of
// the vertices, both inclusive.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Bounds returns the bounding box of the polygon's vertices. An empty
// polygon has zero bounds.
func (p Polygon) Bounds() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	b := Bounds{X1: p[0].X, Y1: p[0].Y, X2: p[0].X, Y2: p[0].Y}
	for _, v := range p[1:] {
		b.X1 = min(b.X1, v.X)
		b.Y1 = min(b.Y1, v.Y)
		b.X2 = max(b.X2, v.X)
		b.Y2 = max(b.Y2, v.Y)
	}
	return b
}

// Perimeter returns the closed arc length of a contour, including the
// segment from the last point back to the first.
func Perimeter(c Contour) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		total += distance(c[i], c[(i+1)%n])
	}
	return total
}

// Approximate simplifies a contour with a tolerance of
// ApproxEpsilonRatio * Perimeter(c).
func Approximate(c Contour) Polygon {
	return Simplify(c, ApproxEpsilonRatio*Perimeter(c))
}

// Simplify reduces a closed contour to a polygon using Douglas-Peucker
// with the given tolerance.
//
// # Algorithm
//
//  1. The first point and the point farthest from it split the closed
//     curve into two open chains.
//  2. Each chain is simplified independently: the point with the largest
//     perpendicular distance from the chain's chord is kept when that
//     distance exceeds epsilon, and the two halves are processed again.
//  3. The kept points are returned in their original contour order.
//
// Every returned vertex is a point of c and the vertex count never exceeds
// len(c). Contours of one or two points are returned as copies; a contour
// whose points all coincide collapses to a single vertex.
func Simplify(c Contour, epsilon float64) Polygon {
	n := len(c)
	if n <= 2 {
		return append(Polygon(nil), c...)
	}

	far := 0
	var farDist float64
	for i := 1; i < n; i++ {
		if d := distance(c[0], c[i]); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return Polygon{c[0]}
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[far] = true
	simplifyChain(c, 0, far, epsilon, keep)
	simplifyChain(c, far, n, epsilon, keep)

	out := make(Polygon, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, c[i])
		}
	}
	return out
}

// simplifyChain marks the vertices to keep between indices first and last.
// Indices are taken modulo len(c), so last may equal len(c) to close the
// curve back to point 0.
func simplifyChain(c Contour, first, last int, epsilon float64, keep []bool) {
	n := len(c)
	stack := [][2]int{{first, last}}

	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s, e := span[0], span[1]
		if e-s < 2 {
			continue
		}

		a, b := c[s%n], c[e%n]
		maxDist := -1.0
		split := -1
		for k := s + 1; k < e; k++ {
			if d := lineDistance(c[k%n], a, b); d > maxDist {
				maxDist, split = d, k
			}
		}

		if maxDist > epsilon {
			keep[split%n] = true
			stack = append(stack, [2]int{split, e}, [2]int{s, split})
		}
	}
}

// lineDistance returns the perpendicular distance from p to the line through
// a and b, or the distance to a when a and b coincide.
func lineDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return distance(p, a)
	}
	cross := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return math.Abs(cross) / norm
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}
