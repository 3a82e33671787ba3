package puzzle

import (
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

// PieceView is the read-only render description of one piece: its outline
// data plus a resolved board transform. For grouped pieces the transform is
// the group placement projected onto the member. Outline slices are shared
// with the engine and must not be mutated.
type PieceView struct {
	ID       string
	Index    int
	Polygon  []geom.Point
	Curve    *tessellation.Curve
	Centroid geom.Point
	X, Y     float64
	Rotation float64
	ZIndex   int
}

// GroupView is the read-only render description of a merged group.
type GroupView struct {
	ID       string
	Centroid geom.Point
	X, Y     float64
	Rotation float64
	ZIndex   int
	Members  []PieceView
}

// Snapshot is a complete read-only view of the board for one frame.
type Snapshot struct {
	Pieces     []PieceView // ungrouped singles
	Groups     []GroupView
	SelectedID string
	Completed  bool
	PieceCount int
}

// Snapshot builds the current frame view. scale is the image-to-board
// scale factor used to place group members.
func (b *Board) Snapshot(scale float64) Snapshot {
	snap := Snapshot{
		SelectedID: b.selectedID,
		Completed:  b.completed,
		PieceCount: len(b.pieces),
	}

	for _, p := range b.pieces {
		if b.groupOf[p.ID] != "" {
			continue
		}
		snap.Pieces = append(snap.Pieces, PieceView{
			ID:       p.ID,
			Index:    p.Index,
			Polygon:  p.Polygon,
			Curve:    p.Curve,
			Centroid: p.Centroid,
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
			ZIndex:   p.ZIndex,
		})
	}

	for _, g := range b.groups {
		gv := GroupView{
			ID:       g.ID,
			Centroid: g.Centroid,
			X:        g.X,
			Y:        g.Y,
			Rotation: g.Rotation,
			ZIndex:   g.ZIndex,
			Members:  make([]PieceView, 0, len(g.PieceIDs)),
		}
		for _, pid := range g.PieceIDs {
			p := b.pieceByID[pid]
			world := b.memberWorld(g, p, scale)
			gv.Members = append(gv.Members, PieceView{
				ID:       p.ID,
				Index:    p.Index,
				Polygon:  p.Polygon,
				Curve:    p.Curve,
				Centroid: p.Centroid,
				X:        world.X,
				Y:        world.Y,
				Rotation: g.Rotation,
				ZIndex:   g.ZIndex,
			})
		}
		snap.Groups = append(snap.Groups, gv)
	}

	return snap
}

// memberWorld projects a member piece's centroid through its group's
// placement: the image-space offset from the group centroid, scaled to
// board units and rotated by the group rotation.
func (b *Board) memberWorld(g *Group, p *tessellation.Piece, scale float64) geom.Point {
	offset := geom.ImageToBoard(p.Centroid.Sub(g.Centroid), scale)
	return geom.Pt(g.X, g.Y).Add(geom.RotateVec(offset, g.Rotation))
}

// HitTest returns the id of the topmost entity whose padded outline
// contains the board-space point, or "" when nothing is hit. Grouped
// pieces resolve to their group id.
func (b *Board) HitTest(pt geom.Point, scale float64) string {
	bestID := ""
	bestZ := -1

	test := func(p *tessellation.Piece, world geom.Point, rotation float64, entityID string, z int) {
		if z <= bestZ {
			return
		}
		// Inverse transform the board point into the piece's image space.
		local := geom.RotateVec(pt.Sub(world), -rotation)
		imagePt := p.Centroid.Add(geom.BoardToImage(local, scale))
		if geom.PolygonContains(p.Polygon, imagePt) {
			bestID = entityID
			bestZ = z
		}
	}

	for _, p := range b.pieces {
		if b.groupOf[p.ID] != "" {
			continue
		}
		test(p, geom.Pt(p.X, p.Y), p.Rotation, p.ID, p.ZIndex)
	}
	for _, g := range b.groups {
		for _, pid := range g.PieceIDs {
			p := b.pieceByID[pid]
			test(p, b.memberWorld(g, p, scale), g.Rotation, g.ID, g.ZIndex)
		}
	}

	return bestID
}
