package trace

import (
	"sync"

	"cavityscan/pkg/geom"
)

// Method tags how the boundary data in an accumulator was produced.
type Method int

const (
	// MethodRayCasting marks boundaries discovered by radial ray marching.
	MethodRayCasting Method = iota
)

// Accumulator collects the boundary rings and per-layer centers discovered
// by a scan and holds the final physical volume estimate. Rings are keyed
// by their coordinate along the scanning axis, so inserts from the
// ascending and descending traversal directions may interleave arbitrarily
// without lost updates. All methods are safe for concurrent use.
type Accumulator struct {
	mu sync.Mutex

	method  Method
	rings   map[geom.Axis]map[int][]geom.Point3D
	centers []geom.Point3D

	volume    int64
	volumeSet bool

	recordDebug bool
	debug       []geom.Point3D

	observers []func()
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{rings: make(map[geom.Axis]map[int][]geom.Point3D)}
}

// Reset clears all collected rings, centers, debug points and the volume.
// Registered observers and the debug-recording flag survive a reset.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rings = make(map[geom.Axis]map[int][]geom.Point3D)
	a.centers = nil
	a.debug = nil
	a.volume = 0
	a.volumeSet = false
}

// SetMethod records which build method produced the boundary data.
func (a *Accumulator) SetMethod(m Method) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.method = m
}

// Method returns the build method tag.
func (a *Accumulator) Method() Method {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.method
}

// AddRing stores one layer's boundary ring, keyed by the ring's coordinate
// along the given axis. A later ring at the same coordinate replaces the
// earlier one. Empty rings are ignored.
func (a *Accumulator) AddRing(axis geom.Axis, ring []geom.Point3D) {
	if len(ring) == 0 {
		return
	}
	key := ring[0].Coord(axis)
	a.mu.Lock()
	defer a.mu.Unlock()
	byIndex, ok := a.rings[axis]
	if !ok {
		byIndex = make(map[int][]geom.Point3D)
		a.rings[axis] = byIndex
	}
	byIndex[key] = ring
}

// AddCenter records one layer's center point.
func (a *Accumulator) AddCenter(p geom.Point3D) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.centers = append(a.centers, p)
}

// Centers returns a copy of the recorded per-layer centers, in insertion
// order.
func (a *Accumulator) Centers() []geom.Point3D {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]geom.Point3D, len(a.centers))
	copy(out, a.centers)
	return out
}

// RingAt returns the stored ring whose coordinate along the given axis is
// index, or nil when no ring was recorded there.
func (a *Accumulator) RingAt(axis geom.Axis, index int) []geom.Point3D {
	a.mu.Lock()
	defer a.mu.Unlock()
	byIndex, ok := a.rings[axis]
	if !ok {
		return nil
	}
	return byIndex[index]
}

// RingCount returns the number of rings stored along the given axis.
func (a *Accumulator) RingCount(axis geom.Axis) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.rings[axis])
}

// SetVolume stores the computed physical volume. The scan writes it
// exactly once, after all rings are collected.
func (a *Accumulator) SetVolume(v int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = v
	a.volumeSet = true
}

// Volume returns the stored physical volume and whether one has been set.
func (a *Accumulator) Volume() (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume, a.volumeSet
}

// EnableDebugRecording toggles recording of raw boundary hits for
// diagnostic runs.
func (a *Accumulator) EnableDebugRecording(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recordDebug = on
}

// AddDebugPoints records raw boundary hits when debug recording is on.
func (a *Accumulator) AddDebugPoints(pts []geom.Point3D) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.recordDebug {
		return
	}
	a.debug = append(a.debug, pts...)
}

// DebugPoints returns a copy of the recorded debug points.
func (a *Accumulator) DebugPoints() []geom.Point3D {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]geom.Point3D, len(a.debug))
	copy(out, a.debug)
	return out
}

// OnScanComplete registers an observer invoked once after each completed
// scan, when the rings, centers and volume are all consistent.
// Registration is not safe concurrently with a running scan.
func (a *Accumulator) OnScanComplete(fn func()) {
	a.observers = append(a.observers, fn)
}

func (a *Accumulator) notifyComplete() {
	for _, fn := range a.observers {
		fn()
	}
}
