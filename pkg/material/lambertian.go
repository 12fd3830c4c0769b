package material

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewLambertian creates a new diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

func (m *Material) scatterLambertian(hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	target := hit.Normal.Add(core.RandomInUnitSphere(random))

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, target),
		Attenuation: m.Albedo,
	}, true
}
