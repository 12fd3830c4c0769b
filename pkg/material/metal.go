package material

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: core.Clamp(fuzz, 0.0, 1.0)}
}

func (m *Material) scatterMetal(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))

	// Fuzz can push the ray below the surface; absorb it
	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}
