// Package tessellation builds the initial interlocking piece set for a
// puzzle: it partitions the source image plane into cells, synthesizes the
// piece outlines, derives the neighbor adjacency graph, and scatters the
// pieces across the board.
//
// Two strategies are provided: "organic" (relaxed Voronoi cells) and "grid"
// (rectangular cells with complementary tab/blank curves). Strategies
// register themselves by name in init(), mirroring how the platform
// discovers games.
package tessellation

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-jigsaw/internal/geom"
)

// SegmentOp identifies the kind of a boundary curve segment.
type SegmentOp int

const (
	// SegLine is a straight segment to Segment.To.
	SegLine SegmentOp = iota
	// SegCubic is a cubic curve to Segment.To with control points C1, C2.
	SegCubic
)

// Segment is one piece of a boundary curve. Coordinates are image-space.
type Segment struct {
	Op     SegmentOp
	C1, C2 geom.Point // control points, cubic only
	To     geom.Point
}

// Curve is a closed piecewise outline: straight runs plus paired cubic
// segments forming tab/blank bumps. The last segment connects back to Start.
type Curve struct {
	Start    geom.Point
	Segments []Segment
}

// Piece is one puzzle piece: immutable identity and shape, mutable placement.
type Piece struct {
	ID    string // stable unique id, "p<index>"
	Index int    // generation index

	// Polygon is the piece's (possibly padded) bounding outline in
	// image-space, an open ring. For the grid strategy this is the padded
	// cell rectangle; for the organic strategy it is the cell itself.
	Polygon []geom.Point

	// Curve is the true interlocking outline (grid strategy only).
	Curve *Curve

	// Centroid is the image-space centroid of the true cell.
	Centroid geom.Point

	// Board placement.
	X, Y     float64
	Rotation float64 // degrees, normalized to [0,360)
	ZIndex   int

	// Neighbors lists true geometric neighbors, ascending by generation
	// index. Fixed at generation time.
	Neighbors []string
}

// Params are the inputs to a tessellation run.
type Params struct {
	ImageW, ImageH float64
	PieceCount     int
	BoardW, BoardH float64
}

// Strategy produces a full piece set from tessellation parameters.
// Implementations must be deterministic for a given rng state.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Generate builds the piece set. The returned pieces satisfy the
	// engine's invariants: symmetric neighbor sets, ids p0..pN-1 in
	// generation order, placements scattered inside the board.
	Generate(p Params, rng *rand.Rand) ([]*Piece, error)
}

// Factory creates a new strategy instance.
type Factory func() Strategy

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from a strategy's init() function.
// Panics if a strategy with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("tessellation: strategy %q already registered", name))
	}
	factories[name] = f
}

// Create instantiates a strategy by name.
// Returns an error if the name is not registered.
func Create(name string) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("tessellation: unknown strategy %q", name)
	}
	return f(), nil
}

// Exists checks if a strategy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// List returns the registered strategy names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pieceID returns the stable id for a generation index.
func pieceID(index int) string {
	return fmt.Sprintf("p%d", index)
}

// neighborIDs converts a set of generation indices into a sorted id slice.
func neighborIDs(set map[int]bool) []string {
	indices := make([]int, 0, len(set))
	for i := range set {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = pieceID(idx)
	}
	return ids
}

// rotationStepDeg is the granularity of initial piece rotations. Coarse
// steps keep the initial disorder discoverable without being arbitrarily
// fine-grained.
const rotationStepDeg = 15

// scatter assigns each piece a random board position inside a padded
// sub-region and a random coarse rotation. Z order follows generation order.
func scatter(pieces []*Piece, p Params, rng *rand.Rand) {
	padX := p.BoardW * 0.1
	padY := p.BoardH * 0.1

	for i, pc := range pieces {
		pc.X = padX + rng.Float64()*(p.BoardW-2*padX)
		pc.Y = padY + rng.Float64()*(p.BoardH-2*padY)
		pc.Rotation = float64(rotationStepDeg * rng.Intn(360/rotationStepDeg))
		pc.ZIndex = i + 1
	}
}
