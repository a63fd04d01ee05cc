package detection

import (
	"image"
	"reflect"
	"testing"
)

func TestTraceContours_Empty(t *testing.T) {
	mask := createMask(20, 20)

	contours := TraceContours(mask)
	if contours == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(contours) != 0 {
		t.Errorf("expected no contours, got %d", len(contours))
	}
}

func TestTraceContours_ZeroSize(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 0, 0))

	if contours := TraceContours(mask); len(contours) != 0 {
		t.Errorf("expected no contours, got %d", len(contours))
	}
}

func TestTraceContours_FilledSquare(t *testing.T) {
	mask := createMask(20, 20)
	fillMask(mask, 5, 5, 15, 15)

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}

	want := Contour{{5, 5}, {5, 15}, {15, 15}, {15, 5}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestTraceContours_RingHoleDiscarded(t *testing.T) {
	mask := createMask(20, 20)
	outlineMask(mask, 5, 5, 15, 15)

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected only the outer border, got %d contours", len(contours))
	}

	want := Contour{{5, 5}, {5, 15}, {15, 15}, {15, 5}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestTraceContours_ShapeInsideHoleDiscarded(t *testing.T) {
	mask := createMask(40, 40)
	outlineMask(mask, 2, 2, 37, 37)
	fillMask(mask, 15, 15, 25, 25)

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	if contours[0][0] != (Point{2, 2}) {
		t.Errorf("expected the enclosing ring, got contour starting at %v", contours[0][0])
	}
}

func TestTraceContours_SeparateRegions(t *testing.T) {
	mask := createMask(40, 20)
	fillMask(mask, 2, 2, 8, 8)
	fillMask(mask, 20, 5, 30, 15)

	contours := TraceContours(mask)
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}

	// Raster order of the first pixel.
	if contours[0][0] != (Point{2, 2}) {
		t.Errorf("first contour starts at %v, want (2,2)", contours[0][0])
	}
	if contours[1][0] != (Point{20, 5}) {
		t.Errorf("second contour starts at %v, want (20,5)", contours[1][0])
	}
}

func TestTraceContours_IsolatedPixel(t *testing.T) {
	mask := createMask(10, 10, Point{4, 6})

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	want := Contour{{4, 6}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestTraceContours_DiagonalCompacted(t *testing.T) {
	mask := createMask(10, 10, Point{2, 2}, Point{3, 3}, Point{4, 4}, Point{5, 5}, Point{6, 6})

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	want := Contour{{2, 2}, {6, 6}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestTraceContours_OffsetBounds(t *testing.T) {
	base := createMask(20, 20)
	fillMask(base, 10, 10, 14, 14)
	mask := base.SubImage(image.Rect(5, 5, 20, 20)).(*image.Gray)

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	want := Contour{{10, 10}, {10, 14}, {14, 14}, {14, 10}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestTraceContours_TouchingFrame(t *testing.T) {
	mask := createMask(10, 10)
	fillMask(mask, 0, 0, 9, 9)

	contours := TraceContours(mask)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	want := Contour{{0, 0}, {0, 9}, {9, 9}, {9, 0}}
	if !reflect.DeepEqual(contours[0], want) {
		t.Errorf("contour = %v, want %v", contours[0], want)
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want Contour
	}{
		{
			name: "short contour unchanged",
			pts:  []Point{{0, 0}, {1, 0}},
			want: Contour{{0, 0}, {1, 0}},
		},
		{
			name: "square run",
			pts:  []Point{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {1, 0}},
			want: Contour{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compact(append([]Point(nil), tt.pts...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("compact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	origin := Point{5, 5}
	for i, n := range neighbors {
		if got := direction(origin, origin.add(n)); got != i {
			t.Errorf("direction to %v = %d, want %d", n, got, i)
		}
	}
	if got := direction(origin, Point{7, 5}); got != -1 {
		t.Errorf("direction to non-neighbor = %d, want -1", got)
	}
}
