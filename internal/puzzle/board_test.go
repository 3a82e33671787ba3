package puzzle

import (
	"fmt"
	"testing"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

func testSnapConfig() config.SnapConfig {
	return config.SnapConfig{Distance: 20, AngleDeg: 15, RightAngleDeg: 10}
}

// rowBoard hand-builds a board of n 100x100 square pieces in a row,
// neighbors chained left to right, so tests control the geometry exactly.
func rowBoard(n int) *Board {
	b := NewBoard(testSnapConfig())
	b.pieceByID = make(map[string]*tessellation.Piece, n)
	b.groupByID = make(map[string]*Group)
	b.groupOf = make(map[string]string, n)

	for i := 0; i < n; i++ {
		cx := 50.0 + 100*float64(i)
		var neighbors []string
		if i > 0 {
			neighbors = append(neighbors, fmt.Sprintf("p%d", i-1))
		}
		if i < n-1 {
			neighbors = append(neighbors, fmt.Sprintf("p%d", i+1))
		}
		p := &tessellation.Piece{
			ID:    fmt.Sprintf("p%d", i),
			Index: i,
			Polygon: []geom.Point{
				{X: cx - 50, Y: 0}, {X: cx + 50, Y: 0},
				{X: cx + 50, Y: 100}, {X: cx - 50, Y: 100},
			},
			Centroid:  geom.Pt(cx, 50),
			Neighbors: neighbors,
			ZIndex:    i + 1,
		}
		b.pieces = append(b.pieces, p)
		b.pieceByID[p.ID] = p
	}
	b.zCounter = n + 1
	return b
}

// placeMated positions every piece exactly where the projection formula
// expects it relative to piece p0 at (x, y) with the given rotation.
func placeMated(b *Board, x, y, rotation, scale float64) {
	anchor := b.pieceByID["p0"]
	for _, p := range b.pieces {
		offset := geom.ImageToBoard(p.Centroid.Sub(anchor.Centroid), scale)
		pos := geom.Pt(x, y).Add(geom.RotateVec(offset, rotation))
		p.X, p.Y = pos.X, pos.Y
		p.Rotation = rotation
	}
}

func checkPartition(t *testing.T, b *Board) {
	t.Helper()
	snap := b.Snapshot(1)

	seen := make(map[string]int)
	for _, p := range snap.Pieces {
		seen[p.ID]++
	}
	for _, g := range snap.Groups {
		for _, m := range g.Members {
			seen[m.ID]++
		}
	}

	if len(seen) != len(b.pieces) {
		t.Fatalf("partition covers %d pieces, expected %d", len(seen), len(b.pieces))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("piece %s appears %d times across singles and groups", id, count)
		}
	}
}

func TestInitializeResetsState(t *testing.T) {
	b := NewBoard(testSnapConfig())
	params := tessellation.Params{ImageW: 400, ImageH: 300, PieceCount: 12, BoardW: 200, BoardH: 150}

	if err := b.Initialize("grid", params, 1); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	n := b.PieceCount()
	if n == 0 {
		t.Fatal("no pieces generated")
	}

	// Mutate, then re-initialize: prior selection and groups are wiped.
	snap := b.Snapshot(1)
	b.Select(snap.Pieces[0].ID)
	if err := b.Initialize("grid", params, 2); err != nil {
		t.Fatalf("re-Initialize() failed: %v", err)
	}

	snap = b.Snapshot(1)
	if len(snap.Groups) != 0 {
		t.Error("re-initialize left groups behind")
	}
	if snap.SelectedID != "" {
		t.Error("re-initialize left selection behind")
	}
	if snap.Completed {
		t.Error("re-initialize left completion flag set")
	}
	checkPartition(t, b)
}

func TestInitializeUnknownStrategy(t *testing.T) {
	b := NewBoard(testSnapConfig())
	params := tessellation.Params{ImageW: 400, ImageH: 300, PieceCount: 12, BoardW: 200, BoardH: 150}
	if err := b.Initialize("hexagonal", params, 1); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestSelectRaisesZOrder(t *testing.T) {
	b := rowBoard(3)

	b.Select("p0")
	if b.SelectedID() != "p0" {
		t.Fatalf("SelectedID = %q, expected p0", b.SelectedID())
	}
	// Counter starts at pieceCount+1, so the first raise lands above
	// every scattered piece.
	if z := b.pieceByID["p0"].ZIndex; z != 5 {
		t.Errorf("p0 z = %d, expected 5", z)
	}

	b.Select("p1")
	if z := b.pieceByID["p1"].ZIndex; z != 6 {
		t.Errorf("p1 z = %d, expected 6", z)
	}

	// Clearing selection does not touch z-order.
	b.Select("")
	if b.SelectedID() != "" {
		t.Error("Select(\"\") should clear selection")
	}
	if z := b.pieceByID["p1"].ZIndex; z != 6 {
		t.Errorf("clearing selection changed z to %d", z)
	}
}

func TestSelectInvalidIDIsNoOp(t *testing.T) {
	b := rowBoard(2)
	b.Select("p0")
	b.Select("nope")
	if b.SelectedID() != "p0" {
		t.Errorf("selection changed to %q by invalid id", b.SelectedID())
	}
}

func TestMoveAddsDelta(t *testing.T) {
	b := rowBoard(2)
	p := b.pieceByID["p0"]
	p.X, p.Y = 10, 20

	b.Move("p0", 5, -7)
	if p.X != 15 || p.Y != 13 {
		t.Errorf("position = (%g,%g), expected (15,13)", p.X, p.Y)
	}

	// Off-board positions are permitted.
	b.Move("p0", -1000, -1000)
	if p.X != -985 || p.Y != -987 {
		t.Errorf("off-board move clamped: (%g,%g)", p.X, p.Y)
	}

	// Invalid ids are ignored.
	b.Move("nope", 5, 5)
}

func TestRotateNormalizes(t *testing.T) {
	b := rowBoard(2)

	tests := []struct {
		in, expected float64
	}{
		{45, 45},
		{360, 0},
		{-15, 345},
		{725, 5},
	}
	for _, tc := range tests {
		b.Rotate("p0", tc.in)
		if got := b.pieceByID["p0"].Rotation; got != tc.expected {
			t.Errorf("Rotate(%g): rotation = %g, expected %g", tc.in, got, tc.expected)
		}
	}
}

func TestGroupedPieceIsNotAddressable(t *testing.T) {
	b := rowBoard(2)
	placeMated(b, 10, 10, 0, 1)
	b.AttemptSnap("p0", 1)

	snap := b.Snapshot(1)
	if len(snap.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(snap.Groups))
	}

	// Operations naming absorbed piece ids are silent no-ops.
	g := b.groups[0]
	x, r := g.X, g.Rotation
	b.Move("p0", 50, 50)
	b.Rotate("p1", 45)
	if g.X != x || g.Rotation != r {
		t.Error("operations on absorbed piece ids mutated the group")
	}

	// The group id is addressable.
	b.Move(g.ID, 5, 0)
	if g.X != x+5 {
		t.Error("move by group id had no effect")
	}
}

func TestHitTestFindsTopmost(t *testing.T) {
	b := rowBoard(2)
	// Stack both pieces at the same spot; p1 has the higher z.
	for _, p := range b.pieces {
		p.X, p.Y = 100, 100
		p.Rotation = 0
	}

	if got := b.HitTest(geom.Pt(100, 100), 1); got != "p1" {
		t.Errorf("HitTest = %q, expected topmost p1", got)
	}

	b.Select("p0")
	if got := b.HitTest(geom.Pt(100, 100), 1); got != "p0" {
		t.Errorf("HitTest after raise = %q, expected p0", got)
	}

	if got := b.HitTest(geom.Pt(900, 900), 1); got != "" {
		t.Errorf("HitTest far away = %q, expected empty", got)
	}
}

func TestHitTestResolvesGroupID(t *testing.T) {
	b := rowBoard(2)
	placeMated(b, 100, 100, 0, 1)
	b.AttemptSnap("p0", 1)

	gid := b.groups[0].ID
	if got := b.HitTest(geom.Pt(100, 100), 1); got != gid {
		t.Errorf("HitTest = %q, expected group id %q", got, gid)
	}
}

func TestSnapshotListsSinglesAndGroups(t *testing.T) {
	b := rowBoard(3)
	placeMated(b, 10, 10, 0, 1)
	// Park p2 far away so only p0/p1 merge.
	b.pieceByID["p2"].X = 5000

	b.AttemptSnap("p0", 1)
	snap := b.Snapshot(1)

	if len(snap.Pieces) != 1 || snap.Pieces[0].ID != "p2" {
		t.Errorf("singles = %+v, expected just p2", snap.Pieces)
	}
	if len(snap.Groups) != 1 || len(snap.Groups[0].Members) != 2 {
		t.Fatalf("groups = %+v, expected one group of two", snap.Groups)
	}
	if snap.SelectedID != snap.Groups[0].ID {
		t.Error("merge should select the new group")
	}
	if snap.Completed {
		t.Error("partial merge must not complete the puzzle")
	}
	checkPartition(t, b)
}
