package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolBasicOperations(t *testing.T) {
	pool := NewWorkerPool(4, nil)

	executed := false
	ok := pool.Submit(func() {
		executed = true
	})
	require.True(t, ok)

	pool.Close()
	assert.True(t, executed)
	assert.Equal(t, 4, pool.Workers())
}

func TestWorkerPoolDefaultsWorkers(t *testing.T) {
	pool := NewWorkerPool(0, nil)
	defer pool.Close()

	assert.Positive(t, pool.Workers())
}

func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool := NewWorkerPool(10, nil)

	const numTasks = 100
	var counter atomic.Int64

	var wg sync.WaitGroup
	for range numTasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Submit(func() { counter.Add(1) })
		}()
	}
	wg.Wait()
	pool.Close()

	assert.Equal(t, int64(numTasks), counter.Load())
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(2, nil)
	pool.Close()
	pool.Close()

	assert.False(t, pool.Submit(func() {}))
}

// Closing while submitters are still running must not panic
func TestWorkerPoolCloseRace(t *testing.T) {
	for range 50 {
		pool := NewWorkerPool(4, nil)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 10 {
					pool.Submit(func() {})
				}
			}()
		}
		pool.Close()
		wg.Wait()
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	pool := NewWorkerPool(2, nil)

	var after atomic.Bool
	pool.Submit(func() { panic("boom") })
	pool.Submit(func() { after.Store(true) })
	pool.Close()

	assert.Equal(t, int64(1), pool.Panics())
	assert.True(t, after.Load(), "worker should survive a panicking task")
}

func TestForEachVisitsEveryIndex(t *testing.T) {
	for _, tc := range []struct {
		name        string
		workers     int
		n           int
		minBatch    int
		wantWorkers int
	}{
		{"parallel", 4, 200, 16, 4},
		{"more workers than tasks", 64, 20, 1, 20},
		{"inline below batch", 4, 10, 16, 1},
		{"single worker", 1, 50, 0, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			seen := make([]int32, tc.n)
			stats, err := ForEach(tc.workers, tc.n, tc.minBatch, nil, func(i int) {
				atomic.AddInt32(&seen[i], 1)
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantWorkers, stats.Workers)
			assert.Zero(t, stats.Panics)
			for i, c := range seen {
				assert.Equal(t, int32(1), c, "index %d", i)
			}
		})
	}
}

func TestForEachEmpty(t *testing.T) {
	called := false
	stats, err := ForEach(4, 0, 0, nil, func(int) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, Stats{}, stats)
}

func TestForEachReportsPanics(t *testing.T) {
	stats, err := ForEach(4, 32, 1, nil, func(i int) {
		if i%8 == 0 {
			panic(i)
		}
	})
	require.ErrorIs(t, err, ErrTaskPanicked)
	assert.Equal(t, int64(4), stats.Panics)
	assert.Contains(t, err.Error(), "4 of 32")
}
