// Package geom provides the small integer-coordinate geometry used by the
// cavity scanner: a closed axis enumeration, 2D/3D points with axis-indexed
// access, and the lossless projection between a 3D point and its 2D image
// in an axis-aligned plane.
package geom

import "fmt"

// Axis identifies one of the three grid axes. The set is closed; passing
// any other value to axis-indexed operations is a programming error and
// panics.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts an axis name ("x", "y" or "z", any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis: %s (must be x, y, or z)", s)
}

// Others returns the two axes perpendicular to a, in ascending order.
func (a Axis) Others() [2]Axis {
	switch a {
	case AxisX:
		return [2]Axis{AxisY, AxisZ}
	case AxisY:
		return [2]Axis{AxisX, AxisZ}
	case AxisZ:
		return [2]Axis{AxisX, AxisY}
	}
	panic(fmt.Sprintf("geom: invalid axis %d", int(a)))
}

// Point2D is an integer coordinate in a projection plane. Ray tags the
// point with the index of the ray that produced it, when it came out of a
// ray-casting pass.
type Point2D struct {
	X, Y int
	Ray  int
}

// Point3D is an integer coordinate in the volume grid, optionally tagged
// with the index of the ray that produced it.
type Point3D struct {
	X, Y, Z int
	Ray     int
}

// Coord returns the coordinate of p along the given axis.
func (p Point3D) Coord(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	}
	panic(fmt.Sprintf("geom: invalid axis %d", int(a)))
}

// SetCoord sets the coordinate of p along the given axis.
func (p *Point3D) SetCoord(a Axis, v int) {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	case AxisZ:
		p.Z = v
	default:
		panic(fmt.Sprintf("geom: invalid axis %d", int(a)))
	}
}

// Project drops the coordinate along the given axis, mapping p into the
// 2D coordinate system of the projection orthogonal to that axis. The
// plane axes follow the projection layout: X planes are (Y, Z), Y planes
// are (X, Z), Z planes are (X, Y). The ray tag is preserved.
func (p Point3D) Project(a Axis) Point2D {
	switch a {
	case AxisX:
		return Point2D{X: p.Y, Y: p.Z, Ray: p.Ray}
	case AxisY:
		return Point2D{X: p.X, Y: p.Z, Ray: p.Ray}
	case AxisZ:
		return Point2D{X: p.X, Y: p.Y, Ray: p.Ray}
	}
	panic(fmt.Sprintf("geom: invalid axis %d", int(a)))
}

// Lift is the inverse of Point3D.Project: it rebuilds the 3D point from a
// plane coordinate by fixing the given axis at v. The ray tag is
// preserved.
func (p Point2D) Lift(a Axis, v int) Point3D {
	switch a {
	case AxisX:
		return Point3D{X: v, Y: p.X, Z: p.Y, Ray: p.Ray}
	case AxisY:
		return Point3D{X: p.X, Y: v, Z: p.Y, Ray: p.Ray}
	case AxisZ:
		return Point3D{X: p.X, Y: p.Y, Z: v, Ray: p.Ray}
	}
	panic(fmt.Sprintf("geom: invalid axis %d", int(a)))
}
