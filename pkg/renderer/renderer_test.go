package renderer

import (
	"errors"
	"image/color"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// MockIntegrator returns a constant color and counts calls
type MockIntegrator struct {
	color core.Vec3
	calls atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, random *rand.Rand) core.Vec3 {
	m.calls.Add(1)
	return m.color
}

// lightPanel builds a diffuse light rectangle that fills the whole view
func lightPanel(emission core.Vec3) (geometry.Hittable, *material.Table, *Camera) {
	return lightRect(-100, 100, emission)
}

// lightRect builds a diffuse light rectangle spanning [x0,x1] at z=-1
func lightRect(x0, x1 float64, emission core.Vec3) (geometry.Hittable, *material.Table, *Camera) {
	materials := material.NewTable()
	light := materials.Add(material.NewDiffuseLight(emission))

	arena := geometry.NewArena()
	panel := arena.AddXYRect(x0, x1, -100, 100, -1, light)
	world := geometry.NewBVH(arena, []geometry.Handle{panel})

	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 2,
	})
	return world, materials, camera
}

func testConfig(workers int) Config {
	return Config{
		Width:           64,
		Height:          32,
		TileSize:        8,
		SamplesPerPixel: 1,
		MaxDepth:        0,
		NumWorkers:      workers,
		Seed:            42,
	}
}

func TestRenderer_LightPanelEndToEnd(t *testing.T) {
	world, materials, camera := lightPanel(core.NewVec3(0.25, 1, 4))

	for _, workers := range []int{1, 4} {
		r, err := New(world, materials, camera, testConfig(workers))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		stats, err := r.Render()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !r.Finished() {
			t.Errorf("workers=%d: expected renderer to report finished", workers)
		}
		if r.Progress() != 1 {
			t.Errorf("workers=%d: expected progress 1, got %f", workers, r.Progress())
		}
		if stats.TotalPixels != 64*32 || stats.TotalSamples != 64*32 {
			t.Errorf("workers=%d: unexpected totals %+v", workers, stats)
		}
		if len(stats.Workers) != workers {
			t.Errorf("workers=%d: got stats for %d workers", workers, len(stats.Workers))
		}

		// sqrt(0.25) = 0.5 -> 127; sqrt(1) -> 255; sqrt(4) clamps to 255
		expected := color.RGBA{127, 255, 255, 255}
		img := r.Image()
		for y := 0; y < 32; y++ {
			for x := 0; x < 64; x++ {
				if got := img.RGBAAt(x, y); got != expected {
					t.Fatalf("workers=%d: pixel (%d,%d) = %v, want %v", workers, x, y, got, expected)
				}
			}
		}
	}
}

// The panel covers only x >= 0, so the left half of the view escapes to black
func TestRenderer_HalfPanelEndToEnd(t *testing.T) {
	world, materials, camera := lightRect(0, 100, core.NewVec3(0.25, 1, 4))

	for _, workers := range []int{1, 4} {
		r, err := New(world, materials, camera, testConfig(workers))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if _, err := r.Render(); err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		lit := color.RGBA{127, 255, 255, 255}
		black := color.RGBA{0, 0, 0, 255}
		img := r.Image()
		for y := 0; y < 32; y++ {
			for x := 0; x < 64; x++ {
				expected := lit
				if x < 32 {
					expected = black
				}
				if got := img.RGBAAt(x, y); got != expected {
					t.Fatalf("workers=%d: pixel (%d,%d) = %v, want %v", workers, x, y, got, expected)
				}
			}
		}
	}
}

func TestRenderer_TracesEverySample(t *testing.T) {
	world, materials, camera := lightPanel(core.NewVec3(1, 1, 1))
	config := testConfig(3)
	config.Width, config.Height, config.SamplesPerPixel = 37, 21, 3

	r, err := New(world, materials, camera, config)
	if err != nil {
		t.Fatal(err)
	}
	mock := &MockIntegrator{color: core.NewVec3(1, 1, 1)}
	if err := r.SetIntegrator(mock); err != nil {
		t.Fatal(err)
	}

	stats, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}

	if got := mock.calls.Load(); got != 37*21*3 {
		t.Errorf("Expected %d integrator calls, got %d", 37*21*3, got)
	}

	tiles := 0
	for _, w := range stats.Workers {
		tiles += w.Tiles
	}
	if tiles != stats.Tiles {
		t.Errorf("Workers rendered %d tiles, expected %d", tiles, stats.Tiles)
	}

	for y := 0; y < 21; y++ {
		for x := 0; x < 37; x++ {
			if sum := r.Buffer().Sum(x, y); sum != core.NewVec3(3, 3, 3) {
				t.Fatalf("pixel (%d,%d) sum = %v, want (3,3,3)", x, y, sum)
			}
		}
	}
}

func TestRenderer_StartTwice(t *testing.T) {
	world, materials, camera := lightPanel(core.NewVec3(1, 1, 1))
	r, err := New(world, materials, camera, testConfig(2))
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted, got %v", err)
	}
	if err := r.SetIntegrator(&MockIntegrator{}); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Expected ErrAlreadyStarted from SetIntegrator, got %v", err)
	}
	r.Wait()
}

func TestRenderer_InvalidConfig(t *testing.T) {
	world, materials, camera := lightPanel(core.NewVec3(1, 1, 1))
	config := testConfig(1)
	config.SamplesPerPixel = 0

	if _, err := New(world, materials, camera, config); !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}
}

func TestRenderer_WaitBeforeStart(t *testing.T) {
	world, materials, camera := lightPanel(core.NewVec3(1, 1, 1))
	r, err := New(world, materials, camera, testConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if stats := r.Wait(); stats.Tiles != 0 {
		t.Errorf("Expected zero stats before start, got %+v", stats)
	}
	if r.Finished() {
		t.Error("Renderer should not be finished before start")
	}
}
