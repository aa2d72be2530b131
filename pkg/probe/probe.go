// Package probe maps raw density samples to probe values through a
// windowing curve and classifies them against an acceptance interval.
// The interval is the "inside the cavity" test used throughout boundary
// tracing.
package probe

import (
	"fmt"

	"cavityscan/pkg/geom"
	"cavityscan/pkg/volume"
)

// Lookup converts a raw density sample to its probe value. Implementations
// must be deterministic and monotonic; the tracer calls Map from multiple
// goroutines.
type Lookup interface {
	Map(density uint16) float64
}

// Source is the minimal projection access FromSeed needs. *volume.Grid
// satisfies it.
type Source interface {
	Projection(a geom.Axis, index int) volume.Projection
}

// Identity maps a density sample to itself. Useful for synthetic data
// where no windowing metadata exists.
type Identity struct{}

func (Identity) Map(density uint16) float64 {
	return float64(density)
}

// Windowed is the standard windowing curve built from per-study window
// center/width metadata: a linear ramp centered on the window, clamped to
// [0, 255] probe units.
type Windowed struct {
	Center float64
	Width  float64
}

// NewWindowed builds the windowing curve from study metadata. A window
// width below 1 degenerates to a step at the center.
func NewWindowed(center, width float64) Windowed {
	if width < 1 {
		width = 1
	}
	return Windowed{Center: center, Width: width}
}

func (w Windowed) Map(density uint16) float64 {
	v := float64(density)
	lo := w.Center - w.Width/2
	if v <= lo {
		return 0
	}
	if v >= lo+w.Width {
		return 255
	}
	return (v - lo) / w.Width * 255
}

// Range is the accepted probe-value interval defining "inside the cavity".
type Range struct {
	Min float64
	Max float64
}

// FromSeed builds the acceptance interval for one scan: it samples the
// source's Z projection at the seed point, maps the raw density through
// the lookup curve, and widens the result by the two asymmetric
// tolerances. The seed must lie inside the grid; seeding outside it is a
// programming error and panics.
func FromSeed(seed geom.Point3D, src Source, lut Lookup, tolUp, tolDown float64) Range {
	proj := src.Projection(geom.AxisZ, seed.Z)
	if proj.Empty() || !proj.Contains(seed.X, seed.Y) {
		panic(fmt.Sprintf("probe: seed point (%d,%d,%d) outside grid", seed.X, seed.Y, seed.Z))
	}
	v := lut.Map(proj.At(seed.X, seed.Y))
	return Range{Min: v - tolDown, Max: v + tolUp}
}

// Contains reports whether v lies inside the interval, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
