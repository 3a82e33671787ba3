// Package geom provides the 2D primitives the puzzle engine is built on.
// It contains no external dependencies (especially no Bubble Tea) to keep
// the geometry pure and testable.
package geom

import "math"

// centroidAreaEpsilon is the signed-area threshold below which a polygon is
// treated as degenerate and its centroid falls back to the vertex mean.
const centroidAreaEpsilon = 1e-9

// Point represents a 2D point or vector in float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a new point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents an axis-aligned bounding box in float64 coordinates.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing all
// points. A nil or empty slice yields the zero rectangle.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Centroid returns the area centroid of a simple polygon given as an open
// ring (the last vertex connects back to the first). When the signed area is
// numerically near zero the polygon is degenerate and the arithmetic mean of
// the vertices is returned instead.
func Centroid(poly []Point) Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}

	var area, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		area += cross
		cx += (poly[i].X + poly[j].X) * cross
		cy += (poly[i].Y + poly[j].Y) * cross
	}
	area /= 2

	if math.Abs(area) < centroidAreaEpsilon {
		return VertexMean(poly)
	}
	return Point{cx / (6 * area), cy / (6 * area)}
}

// VertexMean returns the arithmetic mean of the vertices.
func VertexMean(poly []Point) Point {
	if len(poly) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range poly {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(poly)))
}

// RotateAround rotates p around origin by the given angle in degrees. With
// the y axis pointing down, positive angles turn clockwise on screen.
func RotateAround(p, origin Point, degrees float64) Point {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(origin)
	return Point{
		X: origin.X + d.X*cos - d.Y*sin,
		Y: origin.Y + d.X*sin + d.Y*cos,
	}
}

// RotateVec rotates the vector v by the given angle in degrees.
func RotateVec(v Point, degrees float64) Point {
	return RotateAround(v, Point{}, degrees)
}

// PolygonContains reports whether p lies inside the polygon using a ray
// cast. Points exactly on an edge may land on either side; callers that need
// stable hit testing should pad their polygons.
func PolygonContains(poly []Point, p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// NormalizeDeg maps an angle in degrees into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDiff returns the signed difference a-b normalized into (-180, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// ImageToBoard maps an image-space offset into board units given the
// image-to-board scale factor.
func ImageToBoard(v Point, scale float64) Point {
	return v.Scale(scale)
}

// BoardToImage maps a board-space offset back into image units.
func BoardToImage(v Point, scale float64) Point {
	if scale == 0 {
		return Point{}
	}
	return v.Scale(1 / scale)
}
