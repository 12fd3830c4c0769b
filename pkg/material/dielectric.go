package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewDielectric creates a transparent material like glass (1.5) or water (1.33)
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

func (m *Material) scatterDielectric(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	index := m.RefractiveIndex
	dot := rayIn.Direction.Dot(hit.Normal)

	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dot > 0 {
		// Exiting the medium
		outwardNormal = hit.Normal.Negate()
		niOverNt = index
		cosine = index * dot / rayIn.DirLength
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / index
		cosine = -dot / rayIn.DirLength
	}

	reflectProbability := 1.0
	refracted, ok := refractVector(rayIn.Direction, outwardNormal, niOverNt)
	if ok {
		reflectProbability = Reflectance(cosine, index)
	}

	direction := refracted
	if random.Float64() < reflectProbability {
		direction = core.Reflect(rayIn.Direction, hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// refractVector bends v through a surface with normal n using Snell's law.
// It reports false on total internal reflection.
func refractVector(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// An index of 1 means the media are matched and nothing is reflected.
func Reflectance(cosine, refractiveIndex float64) float64 {
	if refractiveIndex == 1.0 {
		return 0
	}
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
