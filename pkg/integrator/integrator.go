package integrator

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray. random must not be
	// shared between goroutines.
	RayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, random *rand.Rand) core.Vec3
}
