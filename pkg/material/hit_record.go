package material

import "github.com/df07/go-tile-pathtracer/pkg/core"

// HitRecord contains information about a ray-object intersection. It is
// allocated by the caller and filled in by a successful hit query.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Surface normal at intersection, as defined by the primitive
	U, V     float64   // Barycentric coordinates of triangle hits
	Material ID        // Material of the hit object
}
