package renderer

import (
	"math/rand"
	"sync"
	"time"
)

// WorkerPool runs a fixed set of workers that pull tiles from a Scheduler
// until it is exhausted.
type WorkerPool struct {
	workers   []*Worker
	scheduler *Scheduler
	wg        sync.WaitGroup
}

// Worker renders tiles with its own random number generator. Its stats are
// written only by its own goroutine and read after the pool is joined.
type Worker struct {
	ID       int
	random   *rand.Rand
	renderer *TileRenderer
	stats    WorkerStats
}

// NewWorkerPool creates numWorkers workers. Worker i seeds its generator
// with seed+i.
func NewWorkerPool(scheduler *Scheduler, tileRenderer *TileRenderer, numWorkers int, seed int64) *WorkerPool {
	wp := &WorkerPool{scheduler: scheduler}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:       i,
			random:   rand.New(rand.NewSource(seed + int64(i))),
			renderer: tileRenderer,
			stats:    WorkerStats{ID: i},
		})
	}
	return wp
}

// Start launches every worker goroutine
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(wp.scheduler, &wp.wg)
	}
}

// Wait blocks until every worker has exited
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// Stats returns per-worker statistics. Only valid after Wait returns.
func (wp *WorkerPool) Stats() []WorkerStats {
	stats := make([]WorkerStats, len(wp.workers))
	for i, worker := range wp.workers {
		stats[i] = worker.stats
	}
	return stats
}

// run is the main worker loop
func (w *Worker) run(scheduler *Scheduler, wg *sync.WaitGroup) {
	defer wg.Done()
	defer scheduler.WorkerDone()

	logger.Debugf("worker %d started", w.ID)
	for {
		tile, ok := scheduler.Next()
		if !ok {
			break
		}

		start := time.Now()
		pixels := w.renderer.RenderTile(tile, w.random)
		w.stats.Busy += time.Since(start)
		w.stats.Tiles++
		w.stats.Pixels += pixels
		w.stats.Samples += pixels * w.renderer.samples

		scheduler.Complete(tile)
	}
	logger.Debugf("worker %d finished: %d tiles in %v", w.ID, w.stats.Tiles, w.stats.Busy)
}
