// Package game implements the interactive jigsaw session: it owns a puzzle
// board, a cursor, and the solve timer, translates input actions into board
// operations, and rasterizes the board onto a screen buffer.
package game

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
	"github.com/vovakirdan/tui-jigsaw/internal/tessellation"
)

const (
	hudHeight     = 1
	cursorSpeedX  = 2 // terminal cells are roughly half as wide as tall
	cursorSpeedY  = 1
	rotationStep  = 15 // degrees per rotate action
	assembledFill = 0.6
)

// State is the per-tick summary exposed to the platform layer.
type State struct {
	Strategy  string
	Pieces    int
	Entities  int // separate movable things left on the board
	Elapsed   time.Duration
	Paused    bool
	Completed bool
}

// Jigsaw is a single puzzle session.
type Jigsaw struct {
	jcfg  config.JigsawConfig
	cfg   core.RuntimeConfig
	board *puzzle.Board
	scale float64

	cursor    geom.Point
	grabbedID string

	tick      uint64
	paused    bool
	completed bool
	tooSmall  bool

	screenW int
	screenH int
}

// New creates a session for the given puzzle configuration.
// Call Reset before stepping.
func New(jcfg config.JigsawConfig) *Jigsaw {
	return &Jigsaw{
		jcfg:  jcfg,
		board: puzzle.NewBoard(jcfg.Snap),
	}
}

// Reset generates a fresh scattered puzzle sized to the screen.
func (g *Jigsaw) Reset(cfg core.RuntimeConfig) error {
	g.cfg = cfg
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	boardW := float64(cfg.ScreenW)
	boardH := float64(cfg.ScreenH - hudHeight)
	g.tooSmall = cfg.ScreenW < 20 || cfg.ScreenH < 8
	if g.tooSmall {
		return nil
	}

	imageW := float64(g.jcfg.Generator.ImageWidth)
	imageH := float64(g.jcfg.Generator.ImageHeight)
	g.scale = assembledFill * math.Min(boardW/imageW, boardH/imageH)

	params := tessellation.Params{
		ImageW:     imageW,
		ImageH:     imageH,
		PieceCount: g.jcfg.Generator.Pieces,
		BoardW:     boardW,
		BoardH:     boardH,
	}
	if err := g.board.Initialize(g.jcfg.Generator.Strategy, params, cfg.Seed); err != nil {
		return err
	}

	g.cursor = geom.Pt(boardW/2, boardH/2)
	g.grabbedID = ""
	g.tick = 0
	g.paused = false
	g.completed = false
	return nil
}

// Step advances the session by one tick using the frame's actions.
func (g *Jigsaw) Step(frame core.InputFrame) {
	if g.tooSmall {
		return
	}

	if frame.Has(core.ActionPause) && !g.completed {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	if !g.completed {
		g.tick++
		g.handleMovement(frame)
		g.handleGrab(frame)
		g.handleRotation(frame)
		g.handleCycle(frame)
		g.completed = g.board.Completed()
	}
}

func (g *Jigsaw) handleMovement(frame core.InputFrame) {
	var dx, dy float64
	if frame.Has(core.ActionLeft) {
		dx -= cursorSpeedX
	}
	if frame.Has(core.ActionRight) {
		dx += cursorSpeedX
	}
	if frame.Has(core.ActionUp) {
		dy -= cursorSpeedY
	}
	if frame.Has(core.ActionDown) {
		dy += cursorSpeedY
	}
	if dx == 0 && dy == 0 {
		return
	}

	g.cursor.X = clamp(g.cursor.X+dx, 0, float64(g.screenW-1))
	g.cursor.Y = clamp(g.cursor.Y+dy, 0, float64(g.screenH-hudHeight-1))

	// A grabbed entity travels with the cursor.
	if g.grabbedID != "" {
		g.board.Move(g.grabbedID, dx, dy)
	}
}

func (g *Jigsaw) handleGrab(frame core.InputFrame) {
	if !frame.Has(core.ActionGrab) {
		return
	}

	if g.grabbedID != "" {
		// Drop: releasing is what arms the snap check.
		g.board.AttemptSnap(g.grabbedID, g.scale)
		g.grabbedID = ""
		return
	}

	if id := g.board.HitTest(g.cursor, g.scale); id != "" {
		g.board.Select(id)
		g.grabbedID = id
	}
}

func (g *Jigsaw) handleRotation(frame core.InputFrame) {
	target := g.grabbedID
	if target == "" {
		target = g.board.SelectedID()
	}
	if target == "" {
		return
	}

	if frame.Has(core.ActionRotateCW) {
		g.board.RotateBy(target, rotationStep)
	}
	if frame.Has(core.ActionRotateCCW) {
		g.board.RotateBy(target, -rotationStep)
	}
	// Rotating a free-standing selection can complete an alignment too.
	if g.grabbedID == "" && (frame.Has(core.ActionRotateCW) || frame.Has(core.ActionRotateCCW)) {
		g.board.AttemptSnap(target, g.scale)
	}
}

// handleCycle walks the selection through the remaining entities in
// generation order and teleports the cursor onto the new selection.
func (g *Jigsaw) handleCycle(frame core.InputFrame) {
	if !frame.Has(core.ActionCycle) || g.grabbedID != "" {
		return
	}

	snap := g.board.Snapshot(g.scale)
	type entity struct {
		id  string
		pos geom.Point
	}
	var entities []entity
	for _, p := range snap.Pieces {
		entities = append(entities, entity{p.ID, geom.Pt(p.X, p.Y)})
	}
	for _, grp := range snap.Groups {
		entities = append(entities, entity{grp.ID, geom.Pt(grp.X, grp.Y)})
	}
	if len(entities) == 0 {
		return
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].id < entities[j].id })

	next := 0
	for i, e := range entities {
		if e.id == snap.SelectedID {
			next = (i + 1) % len(entities)
			break
		}
	}
	g.board.Select(entities[next].id)
	g.cursor = geom.Pt(
		clamp(entities[next].pos.X, 0, float64(g.screenW-1)),
		clamp(entities[next].pos.Y, 0, float64(g.screenH-hudHeight-1)),
	)
}

// State returns the current session summary.
func (g *Jigsaw) State() State {
	snap := g.board.Snapshot(g.scale)
	return State{
		Strategy:  g.jcfg.Generator.Strategy,
		Pieces:    snap.PieceCount,
		Entities:  len(snap.Pieces) + len(snap.Groups),
		Elapsed:   g.Elapsed(),
		Paused:    g.paused,
		Completed: g.completed,
	}
}

// Elapsed returns the solve time accumulated so far. The clock stops while
// paused and freezes on completion.
func (g *Jigsaw) Elapsed() time.Duration {
	if g.cfg.TickRate <= 0 {
		return 0
	}
	return time.Duration(g.tick) * time.Second / time.Duration(g.cfg.TickRate)
}

// Completed reports whether the puzzle has been fully assembled.
func (g *Jigsaw) Completed() bool {
	return g.completed
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
