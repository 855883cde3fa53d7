package render

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetRenderThreadsFromMode(t *testing.T) {
	n := runtime.NumCPU()

	atLeastOne := func(count int) int {
		if count < 1 {
			return 1
		}
		return count
	}

	cases := []struct {
		mode     int
		expected int
	}{
		{0, 1},
		{1, atLeastOne(n / 4)},
		{2, atLeastOne(n / 2)},
		{3, atLeastOne((3 * n) / 4)},
		{4, atLeastOne(n - 1)},
		{5, n},
	}
	for _, c := range cases {
		if got := getRenderThreadsFromMode(c.mode); got != c.expected {
			t.Errorf("Mode %d: expected %d threads, got %d", c.mode, c.expected, got)
		}
	}
}

func TestGetRenderThreadsFromMode_InvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for unknown mode")
		}
	}()
	getRenderThreadsFromMode(6)
}

func TestBarrier_ReleasesTogether(t *testing.T) {
	const workers = 8
	b := newBarrier(workers)

	var beforeCount atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			beforeCount.Add(1)
			b.wait()
			// Everyone must have arrived before anyone passes.
			if got := beforeCount.Load(); got != workers {
				t.Errorf("Released with only %d of %d arrived", got, workers)
			}
		}()
	}
	wg.Wait()
}

func TestBarrier_Reusable(t *testing.T) {
	const workers = 4
	const rounds = 10
	b := newBarrier(workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for round := 0; round < rounds; round++ {
				b.wait()
			}
		}()
	}
	wg.Wait()
}

func TestWorkerBlockBounds_CoverScreen(t *testing.T) {
	// Worker X ranges must tile [0, width) exactly at awkward resolutions.
	for _, width := range []int{320, 333, 1279} {
		for _, threads := range []int{1, 3, 7, 16} {
			blockWidth := float64(width) / float64(threads)
			prevEnd := 0
			for i := 0; i < threads; i++ {
				startX := int(math.Round(float64(i) * blockWidth))
				endX := int(math.Round(float64(i+1) * blockWidth))
				if startX != prevEnd {
					t.Errorf("width %d threads %d: worker %d starts at %d, previous ended at %d",
						width, threads, i, startX, prevEnd)
				}
				prevEnd = endX
			}
			if prevEnd != width {
				t.Errorf("width %d threads %d: last worker ends at %d", width, threads, prevEnd)
			}
		}
	}
}
