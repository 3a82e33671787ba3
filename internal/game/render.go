package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/geom"
	"github.com/vovakirdan/tui-jigsaw/internal/puzzle"
)

// Render draws the session onto the screen buffer.
func (g *Jigsaw) Render(s *core.Screen) {
	s.Clear()

	if g.tooSmall {
		s.DrawTextCentered(s.Height()/2, "Terminal too small - need at least 20x8")
		return
	}

	snap := g.board.Snapshot(g.scale)
	g.renderBoard(s, snap)
	g.renderCursor(s)
	g.renderHUD(s, snap)

	if g.paused {
		s.DrawTextCentered(s.Height()/2, " PAUSED ")
	}
	if g.completed {
		g.renderCompleted(s)
	}
}

// pieceFill is one rasterizable piece outline with its resolved transform.
type pieceFill struct {
	view     puzzle.PieceView
	z        int
	selected bool
}

// renderBoard rasterizes every piece, lowest z first so higher entities
// overdraw lower ones.
func (g *Jigsaw) renderBoard(s *core.Screen, snap puzzle.Snapshot) {
	var fills []pieceFill
	for _, p := range snap.Pieces {
		fills = append(fills, pieceFill{p, p.ZIndex, p.ID == snap.SelectedID})
	}
	for _, grp := range snap.Groups {
		for _, m := range grp.Members {
			fills = append(fills, pieceFill{m, grp.ZIndex, grp.ID == snap.SelectedID})
		}
	}
	sort.SliceStable(fills, func(i, j int) bool { return fills[i].z < fills[j].z })

	for _, f := range fills {
		g.rasterize(s, f)
	}
}

// rasterize fills the cells covered by a piece's transformed outline.
func (g *Jigsaw) rasterize(s *core.Screen, f pieceFill) {
	world := make([]geom.Point, len(f.view.Polygon))
	pos := geom.Pt(f.view.X, f.view.Y)
	for i, v := range f.view.Polygon {
		offset := geom.ImageToBoard(v.Sub(f.view.Centroid), g.scale)
		world[i] = pos.Add(geom.RotateVec(offset, f.view.Rotation))
	}

	box := geom.BoundingBox(world)
	minX := int(math.Floor(box.Min.X))
	maxX := int(math.Ceil(box.Max.X))
	minY := int(math.Floor(box.Min.Y))
	maxY := int(math.Ceil(box.Max.Y))

	fill := '█'
	if f.selected {
		fill = '▓'
	}
	color := core.PieceColor(f.view.Index)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if x < 0 || y < 0 || x >= s.Width() || y >= s.Height()-hudHeight {
				continue
			}
			if geom.PolygonContains(world, geom.Pt(float64(x), float64(y))) {
				s.SetColored(x, y+hudHeight, fill, color)
			}
		}
	}
}

func (g *Jigsaw) renderCursor(s *core.Screen) {
	x := int(g.cursor.X)
	y := int(g.cursor.Y) + hudHeight
	r := '+'
	if g.grabbedID != "" {
		r = '✛'
	}
	s.SetColored(x, y, r, core.ColorBrightWhite)
}

func (g *Jigsaw) renderHUD(s *core.Screen, snap puzzle.Snapshot) {
	left := fmt.Sprintf(" %s  %d pieces  %d loose  %s",
		g.jcfg.Generator.Strategy, snap.PieceCount,
		len(snap.Pieces)+len(snap.Groups), formatElapsed(g.Elapsed()))
	s.DrawTextColored(0, 0, left, core.ColorGray)

	hints := "space grab  q/e rotate  tab cycle  p pause "
	if x := s.Width() - len([]rune(hints)); x > len([]rune(left))+2 {
		s.DrawTextColored(x, 0, hints, core.ColorGray)
	}
}

func (g *Jigsaw) renderCompleted(s *core.Screen) {
	msg := fmt.Sprintf(" SOLVED in %s ", formatElapsed(g.Elapsed()))
	hint := " press r for a new puzzle "
	w := len([]rune(msg))
	if len([]rune(hint)) > w {
		w = len([]rune(hint))
	}
	w += 2
	h := 4
	x := (s.Width() - w) / 2
	y := (s.Height() - h) / 2

	s.FillRect(x, y, w, h, ' ', core.ColorDefault)
	s.DrawBox(x, y, w, h)
	s.DrawTextColored(x+(w-len([]rune(msg)))/2, y+1, msg, core.ColorBrightGreen)
	s.DrawTextColored(x+(w-len([]rune(hint)))/2, y+2, hint, core.ColorGray)
}
