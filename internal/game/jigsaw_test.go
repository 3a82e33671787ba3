package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

func newTestSession(t *testing.T) *Jigsaw {
	t.Helper()
	jcfg := config.DefaultJigsawConfig()
	jcfg.Generator.Pieces = 6

	g := New(jcfg)
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestResetGeneratesScatteredPuzzle(t *testing.T) {
	g := newTestSession(t)

	st := g.State()
	if st.Pieces == 0 {
		t.Fatal("no pieces after reset")
	}
	if st.Entities != st.Pieces {
		t.Errorf("fresh puzzle has %d entities for %d pieces", st.Entities, st.Pieces)
	}
	if st.Completed {
		t.Error("fresh puzzle reported completed")
	}
	if st.Elapsed != 0 {
		t.Errorf("fresh puzzle clock = %v, expected 0", st.Elapsed)
	}
}

func TestClockAdvancesAndPauses(t *testing.T) {
	g := newTestSession(t)

	for i := 0; i < g.cfg.TickRate; i++ {
		g.Step(frameWith())
	}
	if g.Elapsed() != time.Second {
		t.Errorf("elapsed after one second of ticks = %v", g.Elapsed())
	}

	g.Step(frameWith(core.ActionPause))
	paused := g.Elapsed()
	for i := 0; i < 10; i++ {
		g.Step(frameWith())
	}
	if g.Elapsed() != paused {
		t.Error("clock advanced while paused")
	}

	g.Step(frameWith(core.ActionPause))
	g.Step(frameWith())
	if g.Elapsed() == paused {
		t.Error("clock frozen after unpause")
	}
}

func TestCursorStaysOnScreen(t *testing.T) {
	g := newTestSession(t)

	for i := 0; i < 200; i++ {
		g.Step(frameWith(core.ActionLeft, core.ActionUp))
	}
	if g.cursor.X < 0 || g.cursor.Y < 0 {
		t.Errorf("cursor escaped the screen: %v", g.cursor)
	}

	for i := 0; i < 200; i++ {
		g.Step(frameWith(core.ActionRight, core.ActionDown))
	}
	if g.cursor.X > float64(g.screenW-1) || g.cursor.Y > float64(g.screenH-hudHeight-1) {
		t.Errorf("cursor escaped the screen: %v", g.cursor)
	}
}

func TestGrabMovesEntityWithCursor(t *testing.T) {
	g := newTestSession(t)

	// Park the cursor on a known piece and grab it.
	snap := g.board.Snapshot(g.scale)
	target := snap.Pieces[0]
	g.cursor = geom.Pt(target.X, target.Y)

	g.Step(frameWith(core.ActionGrab))
	if g.grabbedID == "" {
		t.Fatal("grab over a piece selected nothing")
	}
	startX := pieceView(t, g, g.grabbedID).X

	before := g.cursor
	g.Step(frameWith(core.ActionRight))
	if got := pieceView(t, g, g.grabbedID).X; got != startX+(g.cursor.X-before.X) {
		t.Errorf("grabbed piece at %g, expected it to follow the cursor", got)
	}

	// Drop releases the grab.
	g.Step(frameWith(core.ActionGrab))
	if g.grabbedID != "" {
		t.Error("drop did not release the grab")
	}
}

func TestRotateActsOnGrabbedEntity(t *testing.T) {
	g := newTestSession(t)

	snap := g.board.Snapshot(g.scale)
	target := snap.Pieces[0]
	g.cursor = geom.Pt(target.X, target.Y)
	g.Step(frameWith(core.ActionGrab))
	if g.grabbedID == "" {
		t.Fatal("grab over a piece selected nothing")
	}
	start := pieceView(t, g, g.grabbedID).Rotation

	g.Step(frameWith(core.ActionRotateCW))
	want := geom.NormalizeDeg(start + rotationStep)
	if got := pieceView(t, g, g.grabbedID).Rotation; got != want {
		t.Errorf("rotation = %g, expected %g", got, want)
	}
}

// pieceView looks up a single piece's view by id in a fresh snapshot.
func pieceView(t *testing.T, g *Jigsaw, id string) puzzle.PieceView {
	t.Helper()
	for _, p := range g.board.Snapshot(g.scale).Pieces {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("piece %s not found as a single", id)
	return puzzle.PieceView{}
}

func TestCycleWalksSelection(t *testing.T) {
	g := newTestSession(t)

	g.Step(frameWith(core.ActionCycle))
	first := g.board.SelectedID()
	if first == "" {
		t.Fatal("cycle selected nothing")
	}

	g.Step(frameWith(core.ActionCycle))
	if g.board.SelectedID() == first {
		t.Error("cycle did not advance the selection")
	}
}

func TestRenderProducesFrame(t *testing.T) {
	g := newTestSession(t)

	s := core.NewScreen(g.screenW, g.screenH)
	g.Render(s)
	if s.String() == "" {
		t.Error("empty frame")
	}
}

func TestTinyTerminalIsHandled(t *testing.T) {
	g := New(config.DefaultJigsawConfig())
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 10, 4
	if err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	g.Step(frameWith(core.ActionGrab))

	s := core.NewScreen(10, 4)
	g.Render(s)
	if s.String() == "" {
		t.Error("too-small screen rendered nothing")
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := formatElapsed(0); got != "00:00" {
		t.Errorf("formatElapsed(0) = %q", got)
	}
	if got := formatElapsed(83 * time.Second); got != "01:23" {
		t.Errorf("formatElapsed(83s) = %q", got)
	}
}
