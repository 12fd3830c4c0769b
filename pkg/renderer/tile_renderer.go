package renderer

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// TileRenderer renders individual tiles into a shared buffer
type TileRenderer struct {
	camera     *Camera
	world      geometry.Hittable
	materials  *material.Table
	integrator integrator.Integrator
	buffer     *Buffer
	samples    int
}

// NewTileRenderer creates a tile renderer writing into buffer
func NewTileRenderer(camera *Camera, world geometry.Hittable, materials *material.Table, integratorInst integrator.Integrator, buffer *Buffer) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		materials:  materials,
		integrator: integratorInst,
		buffer:     buffer,
		samples:    buffer.Samples(),
	}
}

// RenderTile traces every sample of every pixel in tile and stores the
// per-pixel radiance sums. It returns the number of pixels rendered.
func (tr *TileRenderer) RenderTile(tile Tile, random *rand.Rand) int {
	width := float64(tr.buffer.Width())
	height := float64(tr.buffer.Height())
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum := core.Vec3{}
			for s := 0; s < tr.samples; s++ {
				u := (float64(x) + random.Float64()) / width
				v := (float64(y) + random.Float64()) / height
				ray := tr.camera.GetRay(u, v)
				sum = sum.Add(tr.integrator.RayColor(ray, tr.world, tr.materials, random))
			}
			tr.buffer.Set(x, y, sum)
		}
	}

	return bounds.Dx() * bounds.Dy()
}
