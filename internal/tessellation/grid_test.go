package tessellation

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
)

func testParams(count int) Params {
	return Params{
		ImageW:     400,
		ImageH:     300,
		PieceCount: count,
		BoardW:     800,
		BoardH:     600,
	}
}

func generateGrid(t *testing.T, count int, seed int64) []*Piece {
	t.Helper()
	s, err := Create("grid")
	if err != nil {
		t.Fatalf("Create(grid) failed: %v", err)
	}
	pieces, err := s.Generate(testParams(count), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return pieces
}

func pieceIndex(t *testing.T, id string) int {
	t.Helper()
	n, err := strconv.Atoi(strings.TrimPrefix(id, "p"))
	if err != nil {
		t.Fatalf("malformed piece id %q", id)
	}
	return n
}

func TestGridNeighborSymmetry(t *testing.T) {
	pieces := generateGrid(t, 24, 1)

	byID := make(map[string]*Piece)
	for _, p := range pieces {
		byID[p.ID] = p
	}

	for _, p := range pieces {
		for _, nid := range p.Neighbors {
			n, ok := byID[nid]
			if !ok {
				t.Fatalf("piece %s lists unknown neighbor %s", p.ID, nid)
			}
			found := false
			for _, back := range n.Neighbors {
				if back == p.ID {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("neighbor asymmetry: %s lists %s but not vice versa", p.ID, nid)
			}
		}
	}
}

func TestGridNeighborsSorted(t *testing.T) {
	pieces := generateGrid(t, 24, 1)
	for _, p := range pieces {
		for i := 1; i < len(p.Neighbors); i++ {
			if pieceIndex(t, p.Neighbors[i-1]) >= pieceIndex(t, p.Neighbors[i]) {
				t.Errorf("piece %s neighbors not ascending: %v", p.ID, p.Neighbors)
			}
		}
	}
}

func TestGridEdgeComplementarity(t *testing.T) {
	p := testParams(24)
	l := newGridLayout(p, rand.New(rand.NewSource(7)))

	// Interior edges: the two cells sharing an edge must look up the same
	// signed bump, so one sees a tab where the other sees a blank.
	for r := 0; r < l.rows-1; r++ {
		for c := 0; c < l.cols; c++ {
			upper := l.bottomBump(r, c)
			lower := l.topBump(r+1, c)
			if upper != lower {
				t.Errorf("horizontal edge (%d,%d): bump mismatch %v vs %v", r, c, upper, lower)
			}
			if upper == (geom.Point{}) {
				t.Errorf("horizontal interior edge (%d,%d) is flat", r, c)
			}
		}
	}
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols-1; c++ {
			left := l.rightBump(r, c)
			right := l.leftBump(r, c+1)
			if left != right {
				t.Errorf("vertical edge (%d,%d): bump mismatch %v vs %v", r, c, left, right)
			}
			if left == (geom.Point{}) {
				t.Errorf("vertical interior edge (%d,%d) is flat", r, c)
			}
		}
	}

	// Boundary edges stay straight.
	for c := 0; c < l.cols; c++ {
		if l.topBump(0, c) != (geom.Point{}) {
			t.Errorf("top boundary edge of column %d not flat", c)
		}
		if l.bottomBump(l.rows-1, c) != (geom.Point{}) {
			t.Errorf("bottom boundary edge of column %d not flat", c)
		}
	}
	for r := 0; r < l.rows; r++ {
		if l.leftBump(r, 0) != (geom.Point{}) {
			t.Errorf("left boundary edge of row %d not flat", r)
		}
		if l.rightBump(r, l.cols-1) != (geom.Point{}) {
			t.Errorf("right boundary edge of row %d not flat", r)
		}
	}
}

func TestGridSharedEdgeTracesSameGeometry(t *testing.T) {
	// The interlocking guarantee: both cells sharing an edge emit the same
	// curve geometry, just traversed in opposite directions.
	p := testParams(24)
	l := newGridLayout(p, rand.New(rand.NewSource(3)))

	x0, y1 := 0.0, l.cellH
	x1 := l.cellW
	from := geom.Pt(x0, y1)
	to := geom.Pt(x1, y1)
	bump := l.bottomBump(0, 0)

	down := l.edgeSegments(from, to, bump)
	up := l.edgeSegments(to, from, bump)

	// Collect all curve points (ends and controls) from both traversals;
	// the sets must match.
	collect := func(start geom.Point, segs []Segment) map[geom.Point]bool {
		set := map[geom.Point]bool{start: true}
		for _, s := range segs {
			set[s.To] = true
			if s.Op == SegCubic {
				set[s.C1] = true
				set[s.C2] = true
			}
		}
		return set
	}

	downSet := collect(from, down)
	upSet := collect(to, up)
	if len(downSet) != len(upSet) {
		t.Fatalf("point count mismatch: %d vs %d", len(downSet), len(upSet))
	}
	for pt := range downSet {
		matched := false
		for q := range upSet {
			if geom.Dist(pt, q) < 1e-6 {
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("point %v from forward traversal missing in reverse traversal", pt)
		}
	}
}

func TestGridClampsToAtLeastTwoRowsAndCols(t *testing.T) {
	for _, count := range []int{1, 2, 3, 5} {
		l := newGridLayout(testParams(count), rand.New(rand.NewSource(1)))
		if l.rows < 2 || l.cols < 2 {
			t.Errorf("count=%d: got %dx%d grid, expected at least 2x2", count, l.rows, l.cols)
		}
	}
}

func TestGridPieceCountApproximatesRequest(t *testing.T) {
	pieces := generateGrid(t, 24, 5)
	n := len(pieces)
	if n < 16 || n > 32 {
		t.Errorf("requested 24 pieces, got %d", n)
	}
}

func TestGridPaddedPolygonBoundsCurve(t *testing.T) {
	// Endpoints and control points both bound a cubic, so checking them
	// against the padded box bounds the whole curve. Boundary-row and
	// boundary-column cells are the tightest case: their outward edges are
	// straight, so the box hugs the bumps on the interior sides.
	for _, seed := range []int64{1, 5, 9, 42} {
		pieces := generateGrid(t, 24, seed)

		for _, p := range pieces {
			box := geom.BoundingBox(p.Polygon)
			check := func(pt geom.Point) {
				if !box.Contains(pt) {
					t.Errorf("seed %d piece %s: curve point %v outside padded polygon box %v", seed, p.ID, pt, box)
				}
			}
			check(p.Curve.Start)
			for _, seg := range p.Curve.Segments {
				check(seg.To)
				if seg.Op == SegCubic {
					check(seg.C1)
					check(seg.C2)
				}
			}
		}
	}
}

func TestGridTabProtrusionMatchesDepth(t *testing.T) {
	// The farthest the outline reaches past the cell rectangle must be the
	// advertised protrusion depth, at the tip cubic's control points.
	p := testParams(24)
	l := newGridLayout(p, rand.New(rand.NewSource(13)))

	from := geom.Pt(0, l.cellH)
	to := geom.Pt(l.cellW, l.cellH)
	bump := l.bottomBump(0, 0)

	segs := l.edgeSegments(from, to, bump)

	maxOffset := 0.0
	measure := func(pt geom.Point) {
		if off := (pt.Y - l.cellH) * float64(sign(bump.Y)); off > maxOffset {
			maxOffset = off
		}
	}
	for _, s := range segs {
		measure(s.To)
		if s.Op == SegCubic {
			measure(s.C1)
			measure(s.C2)
		}
	}

	if math.Abs(maxOffset-l.depth) > 1e-9 {
		t.Errorf("max protrusion = %g, expected depth %g", maxOffset, l.depth)
	}
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func TestGridCentroidIsCellCenter(t *testing.T) {
	pieces := generateGrid(t, 24, 2)
	p := testParams(24)

	// Every centroid must sit strictly inside the image.
	for _, pc := range pieces {
		if pc.Centroid.X <= 0 || pc.Centroid.X >= p.ImageW ||
			pc.Centroid.Y <= 0 || pc.Centroid.Y >= p.ImageH {
			t.Errorf("piece %s centroid %v outside image", pc.ID, pc.Centroid)
		}
	}

	// The padded polygon is symmetric around the cell, so its centroid
	// coincides with the true cell centroid.
	for _, pc := range pieces {
		if geom.Dist(geom.Centroid(pc.Polygon), pc.Centroid) > 1e-6 {
			t.Errorf("piece %s: padded polygon centroid disagrees with cell centroid", pc.ID)
		}
	}
}

func TestScatterPlacesPiecesInsideBoard(t *testing.T) {
	p := testParams(24)
	pieces := generateGrid(t, 24, 11)

	for _, pc := range pieces {
		if pc.X < 0 || pc.X > p.BoardW || pc.Y < 0 || pc.Y > p.BoardH {
			t.Errorf("piece %s placed off board at (%g,%g)", pc.ID, pc.X, pc.Y)
		}
		if pc.Rotation < 0 || pc.Rotation >= 360 {
			t.Errorf("piece %s rotation %g outside [0,360)", pc.ID, pc.Rotation)
		}
		if int(pc.Rotation)%rotationStepDeg != 0 {
			t.Errorf("piece %s rotation %g not a multiple of %d", pc.ID, pc.Rotation, rotationStepDeg)
		}
		if pc.ZIndex <= 0 {
			t.Errorf("piece %s has non-positive z index %d", pc.ID, pc.ZIndex)
		}
	}
}

func TestGridDeterministicForSeed(t *testing.T) {
	a := generateGrid(t, 24, 42)
	b := generateGrid(t, 24, 42)

	if len(a) != len(b) {
		t.Fatalf("piece counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Rotation != b[i].Rotation {
			t.Errorf("piece %d differs between runs with the same seed", i)
		}
		if len(a[i].Curve.Segments) != len(b[i].Curve.Segments) {
			t.Errorf("piece %d curve differs between runs with the same seed", i)
		}
	}
}
