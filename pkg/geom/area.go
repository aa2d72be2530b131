package geom

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Distance returns the Euclidean distance between two grid points.
func Distance(p, q Point3D) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	dz := float64(p.Z - q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// TriangleArea computes the area of the triangle (p, q, r) from its three
// pairwise distances using Heron's formula. The terms under the root are
// taken in absolute value so that near-degenerate triangles, where floating
// point rounding can push a term slightly negative, evaluate to a small
// non-negative area instead of NaN.
func TriangleArea(p, q, r Point3D) float64 {
	a := Distance(p, q)
	b := Distance(q, r)
	c := Distance(r, p)
	s := (a + b + c) / 2
	return math.Sqrt(s * math.Abs(s-a) * math.Abs(s-b) * math.Abs(s-c))
}

// RingCentroid returns the centroid of a boundary ring as the mean of the
// ring points, with the coordinate along the scanning axis taken from the
// first point (all ring points share it). A zero-length ring has no
// centroid; the second return value reports whether one was computed.
func RingCentroid(ring []Point3D, axis Axis) (Point3D, bool) {
	if len(ring) == 0 {
		return Point3D{}, false
	}

	xs := make([]float64, len(ring))
	ys := make([]float64, len(ring))
	for i, p := range ring {
		p2 := p.Project(axis)
		xs[i] = float64(p2.X)
		ys[i] = float64(p2.Y)
	}

	c := Point2D{
		X: int(math.Round(stat.Mean(xs, nil))),
		Y: int(math.Round(stat.Mean(ys, nil))),
	}
	return c.Lift(axis, ring[0].Coord(axis)), true
}
