// Package parallel runs independent per-link work on a bounded set of
// goroutines.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/vizaj/pkg/logging"
)

// ErrTaskPanicked is returned by ForEach when at least one task panicked
var ErrTaskPanicked = errors.New("task panicked")

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards tasks against close during send
	closed  bool
	panics  atomic.Int64
	logger  logging.Logger
}

// NewWorkerPool starts workers goroutines. A non-positive count uses
// GOMAXPROCS.
func NewWorkerPool(workers int, logger logging.Logger) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
		logger:  logger,
	}
	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.tasks {
		wp.run(task)
	}
}

func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.logger.Error("worker task panicked", logging.Any("panic", r))
		}
	}()
	task()
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Submit queues a task. It returns false once the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.tasks <- task
	return true
}

// Close stops accepting tasks and waits for the queued ones to finish
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.tasks)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Panics returns how many tasks panicked so far
func (wp *WorkerPool) Panics() int64 {
	return wp.panics.Load()
}

// Stats describes one ForEach run
type Stats struct {
	// Workers is the number of goroutines used, 1 when run inline
	Workers int
	Panics  int64
}

// ForEach calls fn(i) for every i in [0, n) on up to workers goroutines and
// waits for all of them. Batches smaller than minBatch run on the calling
// goroutine, where a panic is not recovered.
func ForEach(workers, n, minBatch int, logger logging.Logger, fn func(i int)) (Stats, error) {
	if n <= 0 {
		return Stats{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n < minBatch || workers == 1 {
		for i := range n {
			fn(i)
		}
		return Stats{Workers: 1}, nil
	}

	pool := NewWorkerPool(min(workers, n), logger)
	for i := range n {
		pool.Submit(func() { fn(i) })
	}
	pool.Close()

	stats := Stats{Workers: pool.Workers(), Panics: pool.Panics()}
	if stats.Panics > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrTaskPanicked, stats.Panics, n)
	}
	return stats, nil
}
