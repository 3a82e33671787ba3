package puzzle

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
)

// AttemptSnap runs the snap/merge procedure for the entity that just
// stabilized (drag or rotate release). scale is the image-to-board scale
// factor used to project image-space centroid offsets onto the board.
//
// Two alignment aids run in order: first the entity's rotation is rounded
// to the nearest multiple of 90° when within the right-angle window, then
// the merge procedure tests every candidate neighbor against the rotation
// and position gates. A successful merge chains: the freshly formed group
// becomes the active entity and the procedure repeats until no candidate
// qualifies or the puzzle completes. No qualifying candidate is not an
// error; the board is simply left unchanged.
func (b *Board) AttemptSnap(id string, scale float64) {
	e := b.entityOf(id)
	if e == nil || scale <= 0 {
		return
	}

	b.snapToRightAngle(e)

	// Chained merges as an explicit loop: each merge yields exactly one
	// new active entity to re-check.
	active := e.id
	for active != "" && !b.completed {
		active = b.mergeOnce(active, scale)
	}
}

// snapToRightAngle rounds the entity's rotation to the nearest multiple of
// 90° if within the configured window. This runs before the merge gates so
// they read the snapped rotation.
func (b *Board) snapToRightAngle(e *entityRef) {
	nearest := math.Round(e.rotation/90) * 90
	if math.Abs(geom.AngleDiff(e.rotation, nearest)) <= b.snap.RightAngleDeg {
		b.Rotate(e.id, nearest)
		e.rotation = geom.NormalizeDeg(nearest)
	}
}

// mergeOnce evaluates all candidate neighbors of the active entity and
// merges with the first one that passes both gates. Returns the new group
// id, or "" when no candidate qualified.
func (b *Board) mergeOnce(activeID string, scale float64) string {
	active := b.entityOf(activeID)
	if active == nil {
		return ""
	}

	members := make(map[string]bool, len(active.pieceIDs))
	for _, pid := range active.pieceIDs {
		members[pid] = true
	}

	for _, pid := range b.candidateNeighbors(active, members) {
		owner := b.ownerOf(pid)
		if owner == nil || owner.id == active.id {
			continue
		}

		// Rotation gate: the shapes can only visually align when both
		// entities are oriented consistently.
		if math.Abs(geom.AngleDiff(active.rotation, owner.rotation)) > b.snap.AngleDeg {
			continue
		}

		// Position gate: project where the candidate's centroid should
		// sit if it were correctly mated to the active entity, and
		// compare with where it actually is.
		predicted := b.project(active, owner.centroid, scale)
		if geom.Dist(predicted, geom.Pt(owner.x, owner.y)) > b.snap.Distance {
			continue
		}

		return b.merge(active, owner, scale)
	}
	return ""
}

// candidateNeighbors returns the union of the members' neighbor ids,
// excluding pieces already inside the active entity, deduplicated in
// first-seen order. Members are walked in absorption order and each
// neighbor list is ascending by generation index, so the enumeration order
// is stable and merge outcomes are reproducible.
func (b *Board) candidateNeighbors(active *entityRef, members map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, pid := range active.pieceIDs {
		p, ok := b.pieceByID[pid]
		if !ok {
			continue
		}
		for _, nid := range p.Neighbors {
			if members[nid] || seen[nid] {
				continue
			}
			seen[nid] = true
			out = append(out, nid)
		}
	}
	return out
}

// project maps an image-space centroid onto the board using the active
// entity's placement as a rigid transform: scale the image-space offset
// from the active centroid, rotate it by the active rotation, and add the
// active board position.
func (b *Board) project(active *entityRef, imagePoint geom.Point, scale float64) geom.Point {
	offset := geom.ImageToBoard(imagePoint.Sub(active.centroid), scale)
	return geom.Pt(active.x, active.y).Add(geom.RotateVec(offset, active.rotation))
}

// merge fuses the active entity with the owner of a matched candidate into
// a fresh group. The group is anchored to the active entity's placement so
// nothing visually jumps: its board position is the projection of the new
// centroid through the active transform, and it inherits the active
// rotation. Both prior entities disappear, the group takes a fresh id and
// the top z-order slot, becomes the selection, and completes the puzzle
// when it holds every piece.
func (b *Board) merge(active, owner *entityRef, scale float64) string {
	pieceIDs := make([]string, 0, len(active.pieceIDs)+len(owner.pieceIDs))
	pieceIDs = append(pieceIDs, active.pieceIDs...)
	pieceIDs = append(pieceIDs, owner.pieceIDs...)

	// Unweighted centroid over all member points across absorbed
	// polygons; members keep their own outlines.
	var points []geom.Point
	for _, pid := range pieceIDs {
		points = append(points, b.pieceByID[pid].Polygon...)
	}
	centroid := geom.VertexMean(points)

	pos := b.project(active, centroid, scale)

	b.removeEntity(active.id)
	b.removeEntity(owner.id)

	b.groupSeq++
	b.zCounter++
	g := &Group{
		ID:       fmt.Sprintf("g%d", b.groupSeq),
		PieceIDs: pieceIDs,
		Centroid: centroid,
		X:        pos.X,
		Y:        pos.Y,
		Rotation: active.rotation,
		ZIndex:   b.zCounter,
	}
	b.groups = append(b.groups, g)
	b.groupByID[g.ID] = g
	for _, pid := range pieceIDs {
		b.groupOf[pid] = g.ID
	}

	b.selectedID = g.ID
	b.completed = len(pieceIDs) == len(b.pieces)
	return g.ID
}

// removeEntity forgets a group record. Single pieces have no record to
// remove; their membership is rewritten by the caller.
func (b *Board) removeEntity(id string) {
	g, ok := b.groupByID[id]
	if !ok {
		return
	}
	delete(b.groupByID, id)
	for i, other := range b.groups {
		if other == g {
			b.groups = append(b.groups[:i], b.groups[i+1:]...)
			break
		}
	}
}
