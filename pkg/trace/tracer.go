// Package trace implements the seeded cavity scan: height-map priming,
// concurrent bidirectional layer traversal with radial ray marching, and
// the fan-triangulation volume estimate over the discovered boundary
// rings.
package trace

import (
	"context"
	"math"
	"runtime"
	"sync"

	"cavityscan/pkg/geom"
	"cavityscan/pkg/probe"
	"cavityscan/pkg/progress"
	"cavityscan/pkg/volume"
)

// Source is the volumetric data a scan reads. *volume.Grid satisfies it.
// Projection never fails: out-of-range indexes return the empty sentinel.
type Source interface {
	Projection(a geom.Axis, index int) volume.Projection
	AxisExtent(a geom.Axis) int
	DensityRange() (min, max uint16)
	Resolution() (x, y, z float64)
}

// Params controls a scan.
type Params struct {
	// Rays is the number of evenly spaced rays cast per layer.
	Rays int

	// MaxSkip is the number of consecutive out-of-range samples a ray
	// march tolerates before declaring a boundary hit.
	MaxSkip int

	// ToleranceUp and ToleranceDown widen the acceptance interval above
	// and below the seed's probe value.
	ToleranceUp   float64
	ToleranceDown float64

	// StopOnMiss terminates a traversal direction at the first layer
	// whose center falls outside the probe range. When false (the
	// default) the previous center is carried forward and the layer is
	// skipped, which tolerates transient seam and noise levels.
	StopOnMiss bool

	// Workers bounds the parallelism of the volume reduction.
	Workers int
}

func (p Params) withDefaults() Params {
	if p.Rays <= 0 {
		p.Rays = 360
	}
	if p.MaxSkip <= 0 {
		p.MaxSkip = 6
	}
	if p.Workers <= 0 {
		p.Workers = runtime.NumCPU()
	}
	return p
}

// Tracer performs seeded boundary scans against one source. It keeps no
// state between scans; every result is written into the accumulator the
// caller supplies.
type Tracer struct {
	src    Source
	lut    probe.Lookup
	params Params
}

// NewTracer creates a tracer over the given source and density lookup
// curve.
func NewTracer(src Source, lut probe.Lookup, params Params) *Tracer {
	return &Tracer{src: src, lut: lut, params: params.withDefaults()}
}

// passResult is the private result of one traversal direction. Each
// direction accumulates into its own result; the two are merged into the
// shared accumulator only after both passes finish.
type passResult struct {
	rings   map[int][]geom.Point3D
	centers []geom.Point3D
	err     error
}

// Scan traces the cavity around seed along the given axis and writes the
// discovered rings, per-layer centers and the physical volume estimate
// into acc. The ascending and descending passes run concurrently; the
// call returns after both finish and the volume has been computed.
// Cancellation is checked once per layer step.
func (t *Tracer) Scan(ctx context.Context, seed geom.Point3D, axis geom.Axis, acc *Accumulator, sink progress.Sink) error {
	if sink == nil {
		sink = progress.Nop{}
	}

	acc.Reset()
	acc.SetMethod(MethodRayCasting)

	rng := probe.FromSeed(seed, t.src, t.lut, t.params.ToleranceUp, t.params.ToleranceDown)

	heights := t.primeHeightMap(seed, axis, rng)
	seedH := seed.Coord(axis)
	minH, maxH := seedH, seedH
	for h := range heights {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}

	sink.SetMin(0)
	sink.SetMax(maxH - minH + 1)
	sink.Reset()

	// The ascending pass owns the seed layer; the descending pass starts
	// one below so no layer is visited twice.
	var up, down passResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		up = t.tracePass(ctx, seed, axis, rng, seedH, maxH, 1, acc, sink)
	}()
	go func() {
		defer wg.Done()
		down = t.tracePass(ctx, seed, axis, rng, seedH-1, minH, -1, acc, sink)
	}()
	wg.Wait()

	if up.err != nil {
		return up.err
	}
	if down.err != nil {
		return down.err
	}

	// Merge in a fixed order so repeated scans yield identical centers
	// regardless of how the two directions interleaved.
	for _, res := range []passResult{up, down} {
		for _, c := range res.centers {
			acc.AddRing(axis, res.rings[c.Coord(axis)])
			acc.AddCenter(c)
		}
	}

	acc.SetVolume(t.computeVolume(acc, axis))
	acc.notifyComplete()
	return nil
}

// primeHeightMap bootstraps the traversal bounds: for each axis other
// than the scanning axis, it ray-casts a full ring in the projection at
// the seed's coordinate on that axis and records, per scanning-axis
// coordinate, the boundary point found there. The union of keys gives the
// minimum and maximum height the traversal will attempt.
func (t *Tracer) primeHeightMap(seed geom.Point3D, axis geom.Axis, rng probe.Range) map[int]geom.Point3D {
	heights := make(map[int]geom.Point3D)
	for _, other := range axis.Others() {
		proj := t.src.Projection(other, seed.Coord(other))
		if proj.Empty() {
			continue
		}
		for _, p := range t.castRing(seed, proj, other, rng) {
			heights[p.Coord(axis)] = p
		}
	}
	return heights
}

// tracePass walks one traversal direction from layer `from` to layer `to`
// inclusive, stepping by `step`. The pass re-centers on the previous
// layer's ring centroid; a layer whose center samples outside the probe
// range registers nothing and carries the center forward unchanged.
func (t *Tracer) tracePass(ctx context.Context, seed geom.Point3D, axis geom.Axis, rng probe.Range, from, to, step int, acc *Accumulator, sink progress.Sink) passResult {
	res := passResult{rings: make(map[int][]geom.Point3D)}
	center := seed

	for h := from; (step > 0 && h <= to) || (step < 0 && h >= to); h += step {
		select {
		case <-ctx.Done():
			res.err = ctx.Err()
			return res
		default:
		}

		center.SetCoord(axis, h)

		proj := t.src.Projection(axis, h)
		if proj.Empty() {
			// Index ran past the grid; stall rather than error.
			sink.Tick()
			continue
		}

		c2 := center.Project(axis)
		inside := false
		if proj.Contains(c2.X, c2.Y) {
			inside = rng.Contains(t.lut.Map(proj.At(c2.X, c2.Y)))
		}

		if inside {
			ring := t.castRing(center, proj, axis, rng)
			if len(ring) > 0 {
				res.rings[h] = ring
				res.centers = append(res.centers, center)
				acc.AddDebugPoints(ring)
				if c, ok := geom.RingCentroid(ring, axis); ok {
					center = c
				}
			}
		} else if t.params.StopOnMiss {
			// Tick this layer and every abandoned one so the sink
			// still reaches the end of its range.
			for rest := h; (step > 0 && rest <= to) || (step < 0 && rest >= to); rest += step {
				sink.Tick()
			}
			break
		}

		sink.Tick()
	}

	return res
}

// castRing marches Rays evenly spaced rays outward from the point's 2D
// projection, classifying each stepped-to pixel against the probe range.
// An out-of-range pixel increments a consecutive-miss counter, an
// in-range one resets it; the boundary is declared at the pixel where the
// counter reaches MaxSkip. A ray that would leave the slab returns the
// last in-bounds coordinate instead (an edge hit, not a failure). Every
// returned point is tagged with its ray index and lifted back to 3D at
// the point's scanning-axis coordinate.
func (t *Tracer) castRing(center geom.Point3D, proj volume.Projection, axis geom.Axis, rng probe.Range) []geom.Point3D {
	if proj.Empty() {
		return nil
	}

	h := center.Coord(axis)
	c2 := center.Project(axis)
	ring := make([]geom.Point3D, 0, t.params.Rays)

	for i := 0; i < t.params.Rays; i++ {
		angle := 2 * math.Pi * float64(i) / float64(t.params.Rays)
		sin, cos := math.Sincos(angle)

		fx, fy := float64(c2.X), float64(c2.Y)
		last := geom.Point2D{X: c2.X, Y: c2.Y}
		misses := 0

		for {
			fx += cos
			fy += sin
			px, py := int(math.Round(fx)), int(math.Round(fy))
			if !proj.Contains(px, py) {
				break
			}
			last = geom.Point2D{X: px, Y: py}
			if rng.Contains(t.lut.Map(proj.At(px, py))) {
				misses = 0
				continue
			}
			misses++
			if misses >= t.params.MaxSkip {
				break
			}
		}

		last.Ray = i
		ring = append(ring, last.Lift(axis, h))
	}

	return ring
}

// computeVolume reduces the recorded rings to a physical volume: each
// layer's ring is closed by repeating its first point and fanned into
// triangles from the layer center, areas come from Heron's formula, and
// the summed area is scaled by the voxel resolution product. Layers
// without a ring contribute nothing. Per-layer areas are computed in
// parallel; partial sums are combined in worker order so the result does
// not depend on scheduling.
func (t *Tracer) computeVolume(acc *Accumulator, axis geom.Axis) int64 {
	centers := acc.Centers()
	if len(centers) == 0 {
		return 0
	}

	workers := t.params.Workers
	if workers > len(centers) {
		workers = len(centers)
	}
	perWorker := (len(centers) + workers - 1) / workers

	partials := make([]float64, workers)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			start := id * perWorker
			end := start + perWorker
			if end > len(centers) {
				end = len(centers)
			}
			if start >= end {
				return
			}

			sum := 0.0
			for _, c := range centers[start:end] {
				ring := acc.RingAt(axis, c.Coord(axis))
				if len(ring) == 0 {
					continue
				}
				closed := append(append(make([]geom.Point3D, 0, len(ring)+1), ring...), ring[0])
				for i := 0; i+1 < len(closed); i++ {
					sum += geom.TriangleArea(c, closed[i], closed[i+1])
				}
			}

			mu.Lock()
			partials[id] = sum
			mu.Unlock()
		}(w)
	}
	wg.Wait()

	total := 0.0
	for _, p := range partials {
		total += p
	}

	resX, resY, resZ := t.src.Resolution()
	return int64(total * resX * resY * resZ)
}
