package renderer

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/log"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

var logger = log.New("renderer")

// Renderer renders a scene in parallel by distributing tiles to a pool of
// workers. A Renderer renders once; it cannot be cancelled or restarted.
type Renderer struct {
	config     Config
	camera     *Camera
	world      geometry.Hittable
	materials  *material.Table
	integrator integrator.Integrator

	scheduler *Scheduler
	buffer    *Buffer
	pool      *WorkerPool

	started   atomic.Bool
	startTime time.Time
	done      chan struct{}
	stats     RenderStats
}

// New creates a renderer for world using a path tracer bounded by
// config.MaxDepth
func New(world geometry.Hittable, materials *material.Table, camera *Camera, config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		config:     config,
		camera:     camera,
		world:      world,
		materials:  materials,
		integrator: integrator.NewPathTracer(config.MaxDepth),
		scheduler:  NewScheduler(config.Width, config.Height, config.TileSize),
		buffer:     NewBuffer(config.Width, config.Height, config.SamplesPerPixel),
		done:       make(chan struct{}),
	}, nil
}

// SetIntegrator replaces the light transport algorithm. It must be called
// before Start.
func (r *Renderer) SetIntegrator(integratorInst integrator.Integrator) error {
	if r.started.Load() {
		return ErrAlreadyStarted
	}
	r.integrator = integratorInst
	return nil
}

// Config returns the render settings
func (r *Renderer) Config() Config {
	return r.config
}

// Start launches the workers and returns immediately
func (r *Renderer) Start() error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	tileRenderer := NewTileRenderer(r.camera, r.world, r.materials, r.integrator, r.buffer)
	r.pool = NewWorkerPool(r.scheduler, tileRenderer, r.config.Workers(), r.config.Seed)

	logger.Infof("rendering %dx%d, %d spp, max depth %d, %d tiles of %dpx, %d workers",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.MaxDepth,
		r.scheduler.TileCount(), r.config.TileSize, r.pool.NumWorkers())

	r.startTime = time.Now()
	r.pool.Start()

	go func() {
		r.pool.Wait()
		r.stats = newRenderStats(r.config, r.scheduler.TileCount(), time.Since(r.startTime), r.pool.Stats())
		logger.Infof("render finished in %v", r.stats.Duration)
		close(r.done)
	}()

	return nil
}

// Finished reports whether every worker has exited. Once it returns true,
// Wait returns without blocking for longer than the pool join.
func (r *Renderer) Finished() bool {
	return r.pool != nil && r.scheduler.WorkersDone() == r.pool.NumWorkers()
}

// Wait blocks until the render completes and returns its statistics. It
// returns zero stats if the render was never started.
func (r *Renderer) Wait() RenderStats {
	if !r.started.Load() {
		return RenderStats{}
	}
	<-r.done
	return r.stats
}

// Render starts the render and waits for it to complete
func (r *Renderer) Render() (RenderStats, error) {
	if err := r.Start(); err != nil {
		return RenderStats{}, err
	}
	return r.Wait(), nil
}

// Progress returns the fraction of tiles completed in [0, 1]
func (r *Renderer) Progress() float64 {
	return r.scheduler.Progress()
}

// ActiveTiles returns the tiles currently being rendered
func (r *Renderer) ActiveTiles() []Tile {
	return r.scheduler.ActiveTiles()
}

// Buffer returns the accumulation buffer
func (r *Renderer) Buffer() *Buffer {
	return r.buffer
}

// Preview converts the buffer to an image while workers may still be
// writing to it. The result can mix old and new values for pixels being
// written at the time of the call; it is meant for display only.
func (r *Renderer) Preview() *image.RGBA {
	return r.buffer.Image()
}

// Image waits for the render to complete and returns the final image
func (r *Renderer) Image() *image.RGBA {
	r.Wait()
	return r.buffer.Image()
}
