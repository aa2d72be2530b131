package progress

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterConcurrentTicks(t *testing.T) {
	t.Parallel()

	var c Counter
	c.SetMin(0)
	c.SetMax(400)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Tick()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, c.Count())
	assert.Equal(t, 400, c.Max())

	c.Reset()
	assert.Equal(t, 0, c.Count())
}

func TestConsoleRendersPercentage(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	c := NewConsole("Scanning", &buf)
	c.SetMin(0)
	c.SetMax(4)
	c.Reset()

	for i := 0; i < 4; i++ {
		c.Tick()
	}

	out := buf.String()
	assert.Contains(t, out, "Scanning")
	assert.Contains(t, out, "100.0% complete")
}

func TestConsoleNoRangeIsSilent(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	c := NewConsole("Idle", &buf)
	c.Tick()
	assert.Empty(t, buf.String())
}
