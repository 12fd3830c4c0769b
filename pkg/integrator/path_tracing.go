package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

const (
	// DefaultMaxDepth is the bounce limit used when none is configured
	DefaultMaxDepth = 50

	// hitEpsilon keeps scattered rays from re-hitting the surface they left
	hitEpsilon = 0.001
)

// PathTracer implements unidirectional path tracing without light sampling
// or Russian roulette. Each bounce adds the surface emission weighted by the
// accumulated attenuation; the path ends on a miss, on absorption or after
// MaxDepth scattering events.
type PathTracer struct {
	MaxDepth   int
	Background core.Vec3
}

// NewPathTracer creates a path tracer with a black background
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracer) RayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, random *rand.Rand) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	var rec material.HitRecord
	for depth := 0; ; depth++ {
		if !world.Hit(ray, hitEpsilon, math.Inf(1), &rec) {
			return color.Add(throughput.MultiplyVec(pt.Background))
		}

		mat := materials.Get(rec.Material)
		color = color.Add(throughput.MultiplyVec(mat.Emitted()))

		if depth >= pt.MaxDepth {
			return color
		}

		scatter, ok := mat.Scatter(ray, &rec, random)
		if !ok {
			return color
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}
