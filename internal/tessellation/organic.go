package tessellation

import (
	"fmt"
	"math/rand"

	"github.com/pzsz/voronoi"
	"github.com/pzsz/voronoi/utils"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
)

// lloydIterations is the number of relaxation passes applied to the seed
// points. Three passes give visibly even cells without washing out the
// irregularity that makes organic pieces interesting.
const lloydIterations = 3

// organicStrategy cuts the image into relaxed Voronoi cells. Adjacency is
// taken from the diagram's edge cell pairs, i.e. the Delaunay dual of the
// seed points, which is cheaper and more robust than matching shared
// polygon edges.
type organicStrategy struct{}

func init() {
	Register("organic", func() Strategy {
		return &organicStrategy{}
	})
}

func (s *organicStrategy) Name() string {
	return "organic"
}

func (s *organicStrategy) Generate(p Params, rng *rand.Rand) ([]*Piece, error) {
	if p.ImageW <= 0 || p.ImageH <= 0 {
		return nil, fmt.Errorf("tessellation: invalid image dimensions %gx%g", p.ImageW, p.ImageH)
	}
	count := p.PieceCount
	if count < 2 {
		count = 2
	}

	bbox := voronoi.NewBBox(0, p.ImageW, 0, p.ImageH)

	sites := make([]voronoi.Vertex, count)
	for i := range sites {
		sites[i] = voronoi.Vertex{
			X: rng.Float64() * p.ImageW,
			Y: rng.Float64() * p.ImageH,
		}
	}

	// Lloyd relaxation: replace each site with its cell's centroid and
	// recompute the diagram.
	for i := 0; i < lloydIterations; i++ {
		d := voronoi.ComputeDiagram(sites, bbox, true)
		sites = utils.LloydRelaxation(d.Cells)
	}

	diagram := voronoi.ComputeDiagram(sites, bbox, true)

	// Generation order follows the final diagram's cell order, which is
	// deterministic for a given seed.
	cellIndex := make(map[*voronoi.Cell]int, len(diagram.Cells))
	for i, cell := range diagram.Cells {
		cellIndex[cell] = i
	}

	neighborSets := make([]map[int]bool, len(diagram.Cells))
	for i := range neighborSets {
		neighborSets[i] = make(map[int]bool)
	}
	for _, edge := range diagram.Edges {
		// Border edges have only one owning cell.
		if edge.LeftCell == nil || edge.RightCell == nil {
			continue
		}
		li, lok := cellIndex[edge.LeftCell]
		ri, rok := cellIndex[edge.RightCell]
		if !lok || !rok || li == ri {
			continue
		}
		neighborSets[li][ri] = true
		neighborSets[ri][li] = true
	}

	pieces := make([]*Piece, len(diagram.Cells))
	for i, cell := range diagram.Cells {
		polygon := cellPolygon(cell)
		pieces[i] = &Piece{
			ID:        pieceID(i),
			Index:     i,
			Polygon:   polygon,
			Centroid:  geom.Centroid(polygon),
			Neighbors: neighborIDs(neighborSets[i]),
		}
	}

	scatter(pieces, p, rng)
	return pieces, nil
}

// cellPolygon extracts a cell outline as an open ring: the half-edge start
// points in order, with a duplicated closing vertex stripped if present.
func cellPolygon(cell *voronoi.Cell) []geom.Point {
	polygon := make([]geom.Point, 0, len(cell.Halfedges))
	for _, he := range cell.Halfedges {
		v := he.GetStartpoint()
		polygon = append(polygon, geom.Pt(v.X, v.Y))
	}

	if n := len(polygon); n > 1 && geom.Dist(polygon[0], polygon[n-1]) < 1e-9 {
		polygon = polygon[:n-1]
	}
	return polygon
}
