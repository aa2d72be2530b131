package volume

import "cavityscan/pkg/geom"

// Projection is a read-only 2D density slab orthogonal to one axis. The
// zero value is the empty sentinel returned for out-of-range projection
// requests: it has zero dimensions and contains no pixel.
type Projection struct {
	// Axis is the axis held fixed to obtain this slab.
	Axis geom.Axis

	// Width and Height are the slab dimensions. Their mapping to grid
	// axes depends on Axis; see Grid.Projection.
	Width  int
	Height int

	data []uint16
}

// Empty reports whether this is the out-of-range sentinel.
func (p Projection) Empty() bool {
	return p.data == nil
}

// Contains reports whether pixel (x, y) lies inside the slab.
func (p Projection) Contains(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// At returns the density at pixel (x, y).
func (p Projection) At(x, y int) uint16 {
	return p.data[y*p.Width+x]
}
