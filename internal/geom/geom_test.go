package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func pointsAlmostEqual(a, b Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name     string
		poly     []Point
		expected Point
	}{
		{
			name:     "unit square",
			poly:     []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			expected: Point{0.5, 0.5},
		},
		{
			name:     "offset rectangle",
			poly:     []Point{{2, 2}, {6, 2}, {6, 4}, {2, 4}},
			expected: Point{4, 3},
		},
		{
			name:     "right triangle",
			poly:     []Point{{0, 0}, {3, 0}, {0, 3}},
			expected: Point{1, 1},
		},
		{
			name:     "clockwise winding gives same centroid",
			poly:     []Point{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
			expected: Point{0.5, 0.5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Centroid(tc.poly)
			if !pointsAlmostEqual(got, tc.expected) {
				t.Errorf("Centroid() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCentroidDegenerateFallsBackToVertexMean(t *testing.T) {
	// Collinear points have zero signed area; the centroid must fall back to
	// the vertex mean instead of dividing by zero.
	poly := []Point{{0, 0}, {1, 1}, {2, 2}}
	got := Centroid(poly)
	want := Point{1, 1}
	if !pointsAlmostEqual(got, want) {
		t.Errorf("Centroid() = %v, expected vertex mean %v", got, want)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Error("Centroid() produced NaN for degenerate polygon")
	}
}

func TestCentroidEmpty(t *testing.T) {
	if got := Centroid(nil); got != (Point{}) {
		t.Errorf("Centroid(nil) = %v, expected zero point", got)
	}
}

func TestBoundingBox(t *testing.T) {
	poly := []Point{{3, 1}, {-2, 5}, {7, -4}, {0, 0}}
	box := BoundingBox(poly)

	if box.Min != (Point{-2, -4}) {
		t.Errorf("Min = %v, expected (-2,-4)", box.Min)
	}
	if box.Max != (Point{7, 5}) {
		t.Errorf("Max = %v, expected (7,5)", box.Max)
	}
	if !almostEqual(box.Width(), 9) || !almostEqual(box.Height(), 9) {
		t.Errorf("Width/Height = %v/%v, expected 9/9", box.Width(), box.Height())
	}
}

func TestRotateAround(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		origin   Point
		degrees  float64
		expected Point
	}{
		{"90 about origin", Point{1, 0}, Point{0, 0}, 90, Point{0, 1}},
		{"180 about origin", Point{1, 0}, Point{0, 0}, 180, Point{-1, 0}},
		{"360 is identity", Point{3, 4}, Point{0, 0}, 360, Point{3, 4}},
		{"90 about offset origin", Point{2, 1}, Point{1, 1}, 90, Point{1, 2}},
		{"negative angle", Point{0, 1}, Point{0, 0}, -90, Point{1, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotateAround(tc.p, tc.origin, tc.degrees)
			if !pointsAlmostEqual(got, tc.expected) {
				t.Errorf("RotateAround() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPolygonContains(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"center", Point{5, 5}, true},
		{"outside left", Point{-1, 5}, false},
		{"outside above", Point{5, 11}, false},
		{"near corner inside", Point{0.01, 0.01}, true},
		{"far away", Point{100, 100}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PolygonContains(square, tc.p); got != tc.expected {
				t.Errorf("PolygonContains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// L-shaped polygon; the notch must be outside.
	l := []Point{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}}

	if !PolygonContains(l, Point{1, 3}) {
		t.Error("expected (1,3) inside the L")
	}
	if PolygonContains(l, Point{3, 3}) {
		t.Error("expected (3,3) in the notch to be outside")
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{360, 0},
		{-15, 345},
		{365, 5},
		{720, 0},
		{-360, 0},
		{-725, 355},
	}

	for _, tc := range tests {
		if got := NormalizeDeg(tc.in); !almostEqual(got, tc.expected) {
			t.Errorf("NormalizeDeg(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct {
		a, b, expected float64
	}{
		{10, 350, 20},
		{350, 10, -20},
		{0, 180, 180},
		{180, 0, 180},
		{90, 90, 0},
		{359, 1, -2},
	}

	for _, tc := range tests {
		got := AngleDiff(tc.a, tc.b)
		if !almostEqual(got, tc.expected) {
			t.Errorf("AngleDiff(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
		if got <= -180 || got > 180 {
			t.Errorf("AngleDiff(%v, %v) = %v outside (-180, 180]", tc.a, tc.b, got)
		}
	}
}

func TestImageBoardRoundTrip(t *testing.T) {
	v := Point{40, -12}
	scale := 0.35
	back := BoardToImage(ImageToBoard(v, scale), scale)
	if !pointsAlmostEqual(back, v) {
		t.Errorf("round trip = %v, expected %v", back, v)
	}
}
