package detection

import (
	"image"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

func (p Point) add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Contour is a closed boundary: the last point connects back to the first.
type Contour []Point

// neighbors lists the 8-neighborhood offsets counter-clockwise on screen,
// starting east. Clockwise order is decreasing index.
var neighbors = [8]Point{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// direction returns the neighbor index of to relative to from, or -1 when
// the points are not 8-adjacent.
func direction(from, to Point) int {
	d := Point{X: to.X - from.X, Y: to.Y - from.Y}
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return -1
}

// border records the topology of one traced border.
type border struct {
	outer  bool
	parent int
}

// frameBorder is the id of the virtual border formed by the image frame.
const frameBorder = 1

// TraceContours finds the outermost boundaries of the foreground (nonzero)
// regions in mask.
//
// # Algorithm
//
// Suzuki-Abe border following over a zero-padded copy of the mask. Every
// border is traced so the nesting bookkeeping stays correct, but only outer
// borders whose parent is the image frame are returned. Holes, and anything
// drawn inside a hole, are discarded.
//
// Each returned contour is compacted: interior points of horizontal,
// vertical and diagonal runs are dropped, keeping only the points where the
// boundary changes direction. Coordinates are in the mask's own coordinate
// space.
//
// Contours are returned in the raster order of their first pixel. An empty
// mask yields an empty slice.
func TraceContours(mask *image.Gray) []Contour {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	t := newTracer(mask, width, height)
	borders := []border{{}, {outer: false}} // index 0 unused, 1 = frame
	contours := make([]Contour, 0)

	for y := 1; y <= height; y++ {
		lnbd := frameBorder
		for x := 1; x <= width; x++ {
			v := t.at(Point{X: x, Y: y})
			if v == 0 {
				continue
			}

			var from Point
			outer := false
			switch {
			case v == 1 && t.at(Point{X: x - 1, Y: y}) == 0:
				outer = true
				from = Point{X: x - 1, Y: y}
			case v >= 1 && t.at(Point{X: x + 1, Y: y}) == 0:
				from = Point{X: x + 1, Y: y}
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 1 {
					lnbd = absInt(v)
				}
				continue
			}

			nbd := len(borders)
			prev := borders[lnbd]
			parent := lnbd
			if outer == prev.outer {
				parent = prev.parent
			}
			borders = append(borders, border{outer: outer, parent: parent})

			pts := t.follow(Point{X: x, Y: y}, from, nbd)
			if outer && parent == frameBorder {
				contours = append(contours, compact(shift(pts, bounds.Min)))
			}

			if v := t.at(Point{X: x, Y: y}); v != 1 {
				lnbd = absInt(v)
			}
		}
	}

	return contours
}

// tracer holds the zero-padded label grid used by border following.
// Cells are 0 (background), 1 (unvisited foreground) or ±border id.
type tracer struct {
	labels []int
	stride int
}

func newTracer(mask *image.Gray, width, height int) *tracer {
	stride := width + 2
	labels := make([]int, stride*(height+2))
	for y := 0; y < height; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < width; x++ {
			if row[x] != 0 {
				labels[(y+1)*stride+x+1] = 1
			}
		}
	}
	return &tracer{labels: labels, stride: stride}
}

func (t *tracer) at(p Point) int {
	return t.labels[p.Y*t.stride+p.X]
}

func (t *tracer) set(p Point, v int) {
	t.labels[p.Y*t.stride+p.X] = v
}

// follow traces one border starting at start, entered from the background
// (outer) or hole (inner) pixel from, and labels it with id. It returns the
// border pixels in traversal order, in padded coordinates.
func (t *tracer) follow(start, from Point, id int) []Point {
	// Clockwise search for the first nonzero neighbor.
	d0 := direction(start, from)
	var first Point
	found := false
	for k := 0; k < 8; k++ {
		q := start.add(neighbors[(d0-k+8)%8])
		if t.at(q) != 0 {
			first = q
			found = true
			break
		}
	}
	if !found {
		t.set(start, -id)
		return []Point{start}
	}

	pts := make([]Point, 0, 64)
	prev, cur := first, start
	for {
		// Counter-clockwise search around cur, starting after prev.
		dp := direction(cur, prev)
		eastClear := false
		var next Point
		for k := 1; k <= 8; k++ {
			d := (dp + k) % 8
			q := cur.add(neighbors[d])
			if t.at(q) != 0 {
				next = q
				break
			}
			if d == 0 {
				eastClear = true
			}
		}

		switch {
		case eastClear:
			t.set(cur, -id)
		case t.at(cur) == 1:
			t.set(cur, id)
		}
		pts = append(pts, cur)

		if next == start && cur == first {
			return pts
		}
		prev, cur = cur, next
	}
}

// shift converts padded coordinates back to mask coordinates.
func shift(pts []Point, origin image.Point) []Point {
	for i := range pts {
		pts[i].X += origin.X - 1
		pts[i].Y += origin.Y - 1
	}
	return pts
}

// compact drops points that continue the step direction of the previous
// point, leaving only direction changes. The contour is treated as closed.
func compact(pts []Point) Contour {
	n := len(pts)
	if n < 3 {
		return Contour(pts)
	}

	out := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		if direction(prev, pts[i]) != direction(pts[i], next) {
			out = append(out, pts[i])
		}
	}
	if len(out) == 0 {
		return Contour(pts)
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
