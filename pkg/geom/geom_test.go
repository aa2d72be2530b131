package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Axis{
		"x": AxisX, "X": AxisX,
		"y": AxisY, "Y": AxisY,
		"z": AxisZ, "Z": AxisZ,
	} {
		got, err := ParseAxis(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAxis("w")
	assert.Error(t, err)
}

func TestAxisOthers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, [2]Axis{AxisY, AxisZ}, AxisX.Others())
	assert.Equal(t, [2]Axis{AxisX, AxisZ}, AxisY.Others())
	assert.Equal(t, [2]Axis{AxisX, AxisY}, AxisZ.Others())
}

func TestCoordAccess(t *testing.T) {
	t.Parallel()

	p := Point3D{X: 3, Y: 5, Z: 7}
	assert.Equal(t, 3, p.Coord(AxisX))
	assert.Equal(t, 5, p.Coord(AxisY))
	assert.Equal(t, 7, p.Coord(AxisZ))

	p.SetCoord(AxisY, 11)
	assert.Equal(t, Point3D{X: 3, Y: 11, Z: 7}, p)
}

func TestInvalidAxisPanics(t *testing.T) {
	t.Parallel()

	p := Point3D{}
	assert.Panics(t, func() { p.Coord(Axis(9)) })
	assert.Panics(t, func() { p.SetCoord(Axis(-1), 0) })
	assert.Panics(t, func() { p.Project(Axis(3)) })
	assert.Panics(t, func() { Axis(42).Others() })
}

func TestProjectLiftRoundTrip(t *testing.T) {
	t.Parallel()

	p := Point3D{X: 2, Y: 4, Z: 6, Ray: 17}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		got := p.Project(axis).Lift(axis, p.Coord(axis))
		assert.Equal(t, p, got, "axis %s", axis)
	}
}

func TestProjectPlaneLayout(t *testing.T) {
	t.Parallel()

	p := Point3D{X: 1, Y: 2, Z: 3}
	assert.Equal(t, Point2D{X: 2, Y: 3}, p.Project(AxisX))
	assert.Equal(t, Point2D{X: 1, Y: 3}, p.Project(AxisY))
	assert.Equal(t, Point2D{X: 1, Y: 2}, p.Project(AxisZ))
}

func TestDistance(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, Distance(Point3D{}, Point3D{X: 3, Y: 4}), 1e-12)
	assert.InDelta(t, 0.0, Distance(Point3D{X: 1, Y: 1, Z: 1}, Point3D{X: 1, Y: 1, Z: 1}), 1e-12)
}

func TestTriangleArea(t *testing.T) {
	t.Parallel()

	// 3-4-5 right triangle
	area := TriangleArea(Point3D{}, Point3D{X: 3}, Point3D{X: 3, Y: 4})
	assert.InDelta(t, 6.0, area, 1e-9)

	// Collinear points degenerate to (near) zero without going NaN.
	area = TriangleArea(Point3D{}, Point3D{X: 2}, Point3D{X: 5})
	assert.False(t, math.IsNaN(area), "area must not be NaN")
	assert.InDelta(t, 0.0, area, 1e-6)
}

func TestRingCentroid(t *testing.T) {
	t.Parallel()

	t.Run("square ring", func(t *testing.T) {
		ring := []Point3D{
			{X: 1, Y: 1, Z: 5},
			{X: 3, Y: 1, Z: 5},
			{X: 3, Y: 3, Z: 5},
			{X: 1, Y: 3, Z: 5},
		}
		c, ok := RingCentroid(ring, AxisZ)
		require.True(t, ok)
		assert.Equal(t, Point3D{X: 2, Y: 2, Z: 5}, c)
	})

	t.Run("empty ring", func(t *testing.T) {
		_, ok := RingCentroid(nil, AxisZ)
		assert.False(t, ok)
	})

	t.Run("scanning axis coordinate from first point", func(t *testing.T) {
		ring := []Point3D{
			{X: 4, Y: 0, Z: 2},
			{X: 4, Y: 4, Z: 6},
		}
		c, ok := RingCentroid(ring, AxisX)
		require.True(t, ok)
		assert.Equal(t, 4, c.X)
		assert.Equal(t, 2, c.Y)
		assert.Equal(t, 4, c.Z)
	})
}
