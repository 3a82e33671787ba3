// Package puzzle implements the assembly engine: the authoritative board
// state (pieces, merged groups, selection, z-order, completion) and the
// snap/merge decision procedure that fuses correctly placed neighbors.
//
// All operations are synchronous and run to completion on the calling
// goroutine. Operations naming a nonexistent or stale id are silent no-ops;
// this is a deliberate tolerance for UI events racing state updates (for
// example a piece id captured just before a merge absorbed it).
package puzzle

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

// Group is a fused, jointly-transformable cluster of originally separate
// pieces. A piece belongs to at most one group at any time.
type Group struct {
	ID       string
	PieceIDs []string // absorption order
	Centroid geom.Point
	X, Y     float64
	Rotation float64 // degrees, [0,360)
	ZIndex   int
}

// Board holds the authoritative mutable puzzle state. Only the Board
// mutates it; external collaborators read value-copy snapshots.
type Board struct {
	snap config.SnapConfig

	pieces    []*tessellation.Piece
	pieceByID map[string]*tessellation.Piece

	groups    []*Group
	groupByID map[string]*Group
	groupOf   map[string]string // piece id -> owning group id, "" if single

	selectedID string
	zCounter   int
	groupSeq   int
	completed  bool
}

// NewBoard creates an empty board with the given snap tolerances.
// Call Initialize to generate a puzzle.
func NewBoard(snap config.SnapConfig) *Board {
	return &Board{snap: snap}
}

// Initialize discards any prior state and generates a fresh puzzle using
// the named tessellation strategy. The z-order counter restarts above the
// scattered pieces, selection and completion are cleared.
func (b *Board) Initialize(strategy string, params tessellation.Params, seed int64) error {
	s, err := tessellation.Create(strategy)
	if err != nil {
		return err
	}

	pieces, err := s.Generate(params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("puzzle: tessellation failed: %w", err)
	}

	b.pieces = pieces
	b.pieceByID = make(map[string]*tessellation.Piece, len(pieces))
	b.groupOf = make(map[string]string, len(pieces))
	for _, p := range pieces {
		b.pieceByID[p.ID] = p
	}

	b.groups = nil
	b.groupByID = make(map[string]*Group)
	b.selectedID = ""
	b.zCounter = len(pieces) + 1
	b.groupSeq = 0
	b.completed = false
	return nil
}

// PieceCount returns the number of pieces in the current puzzle.
func (b *Board) PieceCount() int {
	return len(b.pieces)
}

// SelectedID returns the currently selected entity id, or "".
func (b *Board) SelectedID() string {
	return b.selectedID
}

// Completed reports whether every piece has been merged into one group.
func (b *Board) Completed() bool {
	return b.completed
}

// Tolerances returns the snap tolerances the board was built with.
func (b *Board) Tolerances() config.SnapConfig {
	return b.snap
}

// Select sets the selection. A non-empty id that resolves to a live entity
// is also raised to the top of the z-order; an empty id only clears the
// selection. Stale ids are ignored.
func (b *Board) Select(id string) {
	if id == "" {
		b.selectedID = ""
		return
	}

	if g, ok := b.groupByID[id]; ok {
		b.selectedID = id
		b.zCounter++
		g.ZIndex = b.zCounter
		return
	}
	if p := b.singlePiece(id); p != nil {
		b.selectedID = id
		b.zCounter++
		p.ZIndex = b.zCounter
	}
}

// Move translates a piece or group by a board-space delta. Positions are
// not clamped; entities may leave the board during interaction.
func (b *Board) Move(id string, dx, dy float64) {
	if g, ok := b.groupByID[id]; ok {
		g.X += dx
		g.Y += dy
		return
	}
	if p := b.singlePiece(id); p != nil {
		p.X += dx
		p.Y += dy
	}
}

// Rotate sets an entity's rotation to an absolute angle in degrees,
// normalized into [0,360).
func (b *Board) Rotate(id string, degrees float64) {
	deg := geom.NormalizeDeg(degrees)
	if g, ok := b.groupByID[id]; ok {
		g.Rotation = deg
		return
	}
	if p := b.singlePiece(id); p != nil {
		p.Rotation = deg
	}
}

// RotateBy adjusts an entity's rotation by a relative delta in degrees.
func (b *Board) RotateBy(id string, delta float64) {
	if g, ok := b.groupByID[id]; ok {
		g.Rotation = geom.NormalizeDeg(g.Rotation + delta)
		return
	}
	if p := b.singlePiece(id); p != nil {
		p.Rotation = geom.NormalizeDeg(p.Rotation + delta)
	}
}

// singlePiece resolves an id to an ungrouped piece, or nil. Pieces that
// were absorbed into a group are no longer addressable as entities.
func (b *Board) singlePiece(id string) *tessellation.Piece {
	p, ok := b.pieceByID[id]
	if !ok || b.groupOf[p.ID] != "" {
		return nil
	}
	return p
}

// entityRef is a resolved view of a live entity (single piece or group)
// used by the snap procedure. It is a value copy; mutations go through the
// Board by id.
type entityRef struct {
	id       string
	pieceIDs []string
	centroid geom.Point
	x, y     float64
	rotation float64
}

// entityOf resolves an entity id (single piece or group) to a reference.
// Returns nil for unknown or stale ids.
func (b *Board) entityOf(id string) *entityRef {
	if g, ok := b.groupByID[id]; ok {
		return &entityRef{
			id:       g.ID,
			pieceIDs: g.PieceIDs,
			centroid: g.Centroid,
			x:        g.X,
			y:        g.Y,
			rotation: g.Rotation,
		}
	}
	if p := b.singlePiece(id); p != nil {
		return &entityRef{
			id:       p.ID,
			pieceIDs: []string{p.ID},
			centroid: p.Centroid,
			x:        p.X,
			y:        p.Y,
			rotation: p.Rotation,
		}
	}
	return nil
}

// ownerOf resolves the entity currently owning a piece: its group, or the
// piece itself when ungrouped.
func (b *Board) ownerOf(pieceID string) *entityRef {
	if gid := b.groupOf[pieceID]; gid != "" {
		return b.entityOf(gid)
	}
	return b.entityOf(pieceID)
}
