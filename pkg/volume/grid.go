// Package volume assembles ordered 2D density slices into one immutable
// dense 3D grid and serves axis-aligned 2D projections out of it. The grid
// is built exactly once; after Build returns it is read-only, so scans may
// read it from any number of goroutines without locking.
package volume

import (
	"fmt"

	"cavityscan/internal/models"
	"cavityscan/pkg/geom"
	"cavityscan/pkg/progress"
)

// Grid is a dense 3D density field of unsigned 16-bit samples, stored as
// one flat buffer in slice-major order (Z outer, then Y, then X).
type Grid struct {
	xsize, ysize, zsize int

	data []uint16

	minDensity uint16
	maxDensity uint16

	resX, resY, resZ float64

	observers []func()
}

// NewGrid returns an empty grid with zero extents. Build populates it.
func NewGrid() *Grid {
	return &Grid{resX: 1, resY: 1, resZ: 1}
}

// OnDataUpdated registers an observer invoked once after each completed
// Build, when the dense buffer is fully populated and the input slices
// have been released. Registration is not safe concurrently with Build.
func (g *Grid) OnDataUpdated(fn func()) {
	g.observers = append(g.observers, fn)
}

// Build assembles the ordered slice stack into the dense buffer. Width and
// height are taken from the first slice, depth from the slice count. An
// empty slice list is a no-op and leaves the grid in its pre-build state.
// Each copied slice has its sample buffer released, so callers may discard
// the input list once Build returns. One progress tick is reported per
// completed layer.
func (g *Grid) Build(slices []*models.Slice, sink progress.Sink) {
	if len(slices) == 0 {
		return
	}
	if sink == nil {
		sink = progress.Nop{}
	}

	width := slices[0].Width
	height := slices[0].Height
	depth := len(slices)

	sink.SetMin(0)
	sink.SetMax(depth)
	sink.Reset()

	data := make([]uint16, width*height*depth)
	minD := uint16(0xffff)
	maxD := uint16(0)

	for z, slice := range slices {
		base := z * width * height
		for i, v := range slice.Samples {
			data[base+i] = v
			if v < minD {
				minD = v
			}
			if v > maxD {
				maxD = v
			}
		}
		slice.Release()
		sink.Tick()
	}

	g.xsize = width
	g.ysize = height
	g.zsize = depth
	g.data = data
	g.minDensity = minD
	g.maxDensity = maxD

	meta := slices[0].Meta
	g.resX, g.resY, g.resZ = 1, 1, 1
	if meta.PixelSpacingX > 0 {
		g.resX = meta.PixelSpacingX
	}
	if meta.PixelSpacingY > 0 {
		g.resY = meta.PixelSpacingY
	}
	if meta.Thickness > 0 {
		g.resZ = meta.Thickness
	}

	for _, fn := range g.observers {
		fn()
	}
}

// AxisExtent returns the grid size along the given axis.
func (g *Grid) AxisExtent(a geom.Axis) int {
	switch a {
	case geom.AxisX:
		return g.xsize
	case geom.AxisY:
		return g.ysize
	case geom.AxisZ:
		return g.zsize
	}
	panic(fmt.Sprintf("volume: invalid axis %d", int(a)))
}

// DensityRange returns the global minimum and maximum density recorded
// while building the grid.
func (g *Grid) DensityRange() (min, max uint16) {
	return g.minDensity, g.maxDensity
}

// Resolution returns the physical voxel size along each axis in mm.
func (g *Grid) Resolution() (x, y, z float64) {
	return g.resX, g.resY, g.resZ
}

// at returns the sample at grid coordinate (x, y, z). No bounds check.
func (g *Grid) at(x, y, z int) uint16 {
	return g.data[z*g.xsize*g.ysize+y*g.xsize+x]
}

// Projection gathers the 2D density slab obtained by holding the given
// axis fixed at index. Out-of-range indexes return the empty sentinel
// rather than an error, so traversal loops can run past the grid and stop
// gracefully.
//
// The slab shape depends on the axis: Z projections are (Xsize, Ysize),
// X projections are (Ysize, Zsize), Y projections are (Xsize, Zsize).
// Downstream ray casting indexes pixels by the projection's own
// width/height, so these shapes are part of the contract.
func (g *Grid) Projection(a geom.Axis, index int) Projection {
	if index < 0 || index >= g.AxisExtent(a) {
		return Projection{}
	}

	switch a {
	case geom.AxisZ:
		// Z layers are contiguous in the flat buffer; borrow a view.
		base := index * g.xsize * g.ysize
		return Projection{
			Axis:   geom.AxisZ,
			Width:  g.xsize,
			Height: g.ysize,
			data:   g.data[base : base+g.xsize*g.ysize],
		}

	case geom.AxisX:
		buf := make([]uint16, g.ysize*g.zsize)
		for y := 0; y < g.ysize; y++ {
			for z := 0; z < g.zsize; z++ {
				buf[z*g.ysize+y] = g.at(index, y, z)
			}
		}
		return Projection{Axis: geom.AxisX, Width: g.ysize, Height: g.zsize, data: buf}

	case geom.AxisY:
		buf := make([]uint16, g.xsize*g.zsize)
		for x := 0; x < g.xsize; x++ {
			for z := 0; z < g.zsize; z++ {
				buf[z*g.xsize+x] = g.at(x, index, z)
			}
		}
		return Projection{Axis: geom.AxisY, Width: g.xsize, Height: g.zsize, data: buf}
	}

	panic(fmt.Sprintf("volume: invalid axis %d", int(a)))
}
