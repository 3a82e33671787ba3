package tessellation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
)

// Tab/blank curve proportions, relative to the cell dimension along the
// edge (shoulder, tip) and to the shorter cell dimension (depth).
const (
	shoulderRatio = 0.20
	tipRatio      = 0.15
	depthRatio    = 0.30
)

// gridStrategy cuts the image into rows x cols rectangular cells whose
// shared edges carry complementary tab/blank bumps.
type gridStrategy struct{}

func init() {
	Register("grid", func() Strategy {
		return &gridStrategy{}
	})
}

func (s *gridStrategy) Name() string {
	return "grid"
}

// gridLayout holds the cell grid and the per-edge bump directions. Each
// interior edge gets a single signed direction, so the two cells sharing it
// always receive exactly complementary curves.
type gridLayout struct {
	rows, cols   int
	cellW, cellH float64
	depth        float64

	// hBump[r][c] is the bump direction of the horizontal edge between
	// cells (r,c) and (r+1,c): +1 bulges down into row r+1 (a tab of the
	// upper cell), -1 bulges up into row r.
	hBump [][]int

	// vBump[r][c] is the bump direction of the vertical edge between
	// cells (r,c) and (r,c+1): +1 bulges right into column c+1 (a tab of
	// the left cell), -1 bulges left into column c.
	vBump [][]int
}

// newGridLayout chooses row/column counts approximating the image aspect
// ratio and flips a fair coin for every interior edge.
func newGridLayout(p Params, rng *rand.Rand) *gridLayout {
	cols := int(math.Round(math.Sqrt(float64(p.PieceCount) * p.ImageW / p.ImageH)))
	if cols < 2 {
		cols = 2
	}
	rows := int(math.Round(float64(p.PieceCount) / float64(cols)))
	if rows < 2 {
		rows = 2
	}

	cellW := p.ImageW / float64(cols)
	cellH := p.ImageH / float64(rows)

	l := &gridLayout{
		rows:  rows,
		cols:  cols,
		cellW: cellW,
		cellH: cellH,
		depth: depthRatio * math.Min(cellW, cellH),
	}

	l.hBump = make([][]int, rows-1)
	for r := range l.hBump {
		l.hBump[r] = make([]int, cols)
		for c := range l.hBump[r] {
			l.hBump[r][c] = coin(rng)
		}
	}

	l.vBump = make([][]int, rows)
	for r := range l.vBump {
		l.vBump[r] = make([]int, cols-1)
		for c := range l.vBump[r] {
			l.vBump[r][c] = coin(rng)
		}
	}

	return l
}

func coin(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return 1
	}
	return -1
}

func (s *gridStrategy) Generate(p Params, rng *rand.Rand) ([]*Piece, error) {
	if p.ImageW <= 0 || p.ImageH <= 0 {
		return nil, fmt.Errorf("tessellation: invalid image dimensions %gx%g", p.ImageW, p.ImageH)
	}

	l := newGridLayout(p, rng)
	pieces := make([]*Piece, 0, l.rows*l.cols)

	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			pieces = append(pieces, l.buildPiece(r, c))
		}
	}

	scatter(pieces, p, rng)
	return pieces, nil
}

// buildPiece synthesizes one cell's curve, padded polygon, centroid, and
// neighbor set.
func (l *gridLayout) buildPiece(r, c int) *Piece {
	idx := r*l.cols + c
	x0 := float64(c) * l.cellW
	y0 := float64(r) * l.cellH
	x1 := x0 + l.cellW
	y1 := y0 + l.cellH

	tl := geom.Pt(x0, y0)
	tr := geom.Pt(x1, y0)
	br := geom.Pt(x1, y1)
	bl := geom.Pt(x0, y1)

	// Walk the four edges clockwise from the top-left corner. Interior
	// edges look up the single shared bump direction; boundary edges stay
	// straight.
	curve := &Curve{Start: tl}
	curve.Segments = append(curve.Segments, l.edgeSegments(tl, tr, l.topBump(r, c))...)
	curve.Segments = append(curve.Segments, l.edgeSegments(tr, br, l.rightBump(r, c))...)
	curve.Segments = append(curve.Segments, l.edgeSegments(br, bl, l.bottomBump(r, c))...)
	curve.Segments = append(curve.Segments, l.edgeSegments(bl, tl, l.leftBump(r, c))...)

	// Padded click/bounds polygon: the cell rectangle expanded by the
	// protrusion depth on all sides bounds the curve regardless of
	// tab/blank direction.
	d := l.depth
	polygon := []geom.Point{
		{X: x0 - d, Y: y0 - d},
		{X: x1 + d, Y: y0 - d},
		{X: x1 + d, Y: y1 + d},
		{X: x0 - d, Y: y1 + d},
	}

	neighbors := make(map[int]bool)
	if r > 0 {
		neighbors[idx-l.cols] = true
	}
	if r < l.rows-1 {
		neighbors[idx+l.cols] = true
	}
	if c > 0 {
		neighbors[idx-1] = true
	}
	if c < l.cols-1 {
		neighbors[idx+1] = true
	}

	return &Piece{
		ID:        pieceID(idx),
		Index:     idx,
		Polygon:   polygon,
		Curve:     curve,
		Centroid:  geom.Pt((x0+x1)/2, (y0+y1)/2),
		Neighbors: neighborIDs(neighbors),
	}
}

// Bump direction lookups per cell edge. Zero means a straight boundary
// edge. The sign is expressed in the edge's normal axis: for horizontal
// edges +1 points down, for vertical edges +1 points right.

func (l *gridLayout) topBump(r, c int) geom.Point {
	if r == 0 {
		return geom.Point{}
	}
	return geom.Pt(0, float64(l.hBump[r-1][c])*l.depth)
}

func (l *gridLayout) bottomBump(r, c int) geom.Point {
	if r == l.rows-1 {
		return geom.Point{}
	}
	return geom.Pt(0, float64(l.hBump[r][c])*l.depth)
}

func (l *gridLayout) leftBump(r, c int) geom.Point {
	if c == 0 {
		return geom.Point{}
	}
	return geom.Pt(float64(l.vBump[r][c-1])*l.depth, 0)
}

func (l *gridLayout) rightBump(r, c int) geom.Point {
	if c == l.cols-1 {
		return geom.Point{}
	}
	return geom.Pt(float64(l.vBump[r][c])*l.depth, 0)
}

// edgeSegments emits the outline of a single cell edge from a to b. A zero
// bump yields one straight segment. Otherwise the edge carries an S-shaped
// pair of symmetric cubics with a semicircular-ish tip, displaced along the
// bump vector: a tab when the bump points out of the cell, a blank when it
// points in. Both cells sharing the edge trace the same geometry, which is
// what makes their outlines complementary.
func (l *gridLayout) edgeSegments(a, b, bump geom.Point) []Segment {
	if bump == (geom.Point{}) {
		return []Segment{{Op: SegLine, To: b}}
	}

	length := geom.Dist(a, b)
	u := b.Sub(a).Scale(1 / length)
	mid := a.Add(u.Scale(length / 2))

	shoulder := shoulderRatio * length
	tip := math.Min(tipRatio*length, 0.75*l.depth)

	// The tip cubic approximates a half circle of radius tip, whose control
	// points overshoot the endpoints by (4/3)*tip along the bump normal. The
	// neck therefore stops short of the full bump so that those controls, the
	// farthest the curve ever reaches, land exactly at l.depth. The tip clamp
	// above keeps the neck offset non-negative.
	neck := bump.Scale(1 - (4.0/3.0)*tip/l.depth)

	s := mid.Sub(u.Scale(shoulder)) // shoulder start
	e := mid.Add(u.Scale(shoulder)) // shoulder end
	t1 := mid.Sub(u.Scale(tip)).Add(neck)
	t2 := mid.Add(u.Scale(tip)).Add(neck)

	return []Segment{
		{Op: SegLine, To: s},
		{
			Op: SegCubic,
			C1: mid.Sub(u.Scale(tip)),
			C2: t1.Sub(bump.Scale(0.5)),
			To: t1,
		},
		{
			Op: SegCubic,
			C1: mid.Sub(u.Scale(tip)).Add(bump),
			C2: mid.Add(u.Scale(tip)).Add(bump),
			To: t2,
		},
		{
			Op: SegCubic,
			C1: t2.Sub(bump.Scale(0.5)),
			C2: mid.Add(u.Scale(tip)),
			To: e,
		},
		{Op: SegLine, To: b},
	}
}
