package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cavityscan/pkg/geom"
)

func ringAt(z, n int) []geom.Point3D {
	ring := make([]geom.Point3D, n)
	for i := range ring {
		ring[i] = geom.Point3D{X: i, Y: i, Z: z, Ray: i}
	}
	return ring
}

func TestAccumulatorRingsKeyedByHeight(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()

	acc.AddRing(geom.AxisZ, ringAt(2, 4))
	acc.AddRing(geom.AxisZ, ringAt(7, 4))

	assert.Equal(t, 2, acc.RingCount(geom.AxisZ))
	assert.Len(t, acc.RingAt(geom.AxisZ, 2), 4)
	assert.Len(t, acc.RingAt(geom.AxisZ, 7), 4)
	assert.Nil(t, acc.RingAt(geom.AxisZ, 3))
	assert.Nil(t, acc.RingAt(geom.AxisY, 2), "rings are keyed per axis")

	// A later ring at the same height replaces the earlier one.
	acc.AddRing(geom.AxisZ, ringAt(2, 6))
	assert.Len(t, acc.RingAt(geom.AxisZ, 2), 6)
	assert.Equal(t, 2, acc.RingCount(geom.AxisZ))
}

func TestAccumulatorIgnoresEmptyRing(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.AddRing(geom.AxisZ, nil)
	assert.Equal(t, 0, acc.RingCount(geom.AxisZ))
}

func TestAccumulatorReset(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.EnableDebugRecording(true)
	acc.AddRing(geom.AxisZ, ringAt(0, 3))
	acc.AddCenter(geom.Point3D{X: 1, Y: 1})
	acc.AddDebugPoints(ringAt(0, 3))
	acc.SetVolume(99)

	acc.Reset()

	assert.Equal(t, 0, acc.RingCount(geom.AxisZ))
	assert.Empty(t, acc.Centers())
	assert.Empty(t, acc.DebugPoints())
	_, ok := acc.Volume()
	assert.False(t, ok)

	// Debug recording survives a reset.
	acc.AddDebugPoints(ringAt(1, 2))
	assert.Len(t, acc.DebugPoints(), 2)
}

func TestAccumulatorVolumeWriteOnce(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	_, ok := acc.Volume()
	require.False(t, ok)

	acc.SetVolume(1234)
	v, ok := acc.Volume()
	require.True(t, ok)
	assert.Equal(t, int64(1234), v)
}

func TestAccumulatorDebugRecordingOff(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.AddDebugPoints(ringAt(0, 5))
	assert.Empty(t, acc.DebugPoints())
}

// TestAccumulatorConcurrentInserts drives inserts from two goroutines the
// way the ascending and descending traversal directions do, and checks no
// update is lost under arbitrary interleaving.
func TestAccumulatorConcurrentInserts(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	const perDirection = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for z := 0; z < perDirection; z++ {
			acc.AddRing(geom.AxisZ, ringAt(z, 3))
			acc.AddCenter(geom.Point3D{Z: z})
		}
	}()
	go func() {
		defer wg.Done()
		for z := perDirection; z < 2*perDirection; z++ {
			acc.AddRing(geom.AxisZ, ringAt(z, 3))
			acc.AddCenter(geom.Point3D{Z: z})
		}
	}()
	wg.Wait()

	assert.Equal(t, 2*perDirection, acc.RingCount(geom.AxisZ))
	assert.Len(t, acc.Centers(), 2*perDirection)
	for z := 0; z < 2*perDirection; z++ {
		assert.Len(t, acc.RingAt(geom.AxisZ, z), 3, "height %d", z)
	}
}

func TestAccumulatorScanCompleteObserver(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	calls := 0
	acc.OnScanComplete(func() { calls++ })

	acc.notifyComplete()
	assert.Equal(t, 1, calls)
}
