package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Kind identifies which material variant a Material holds.
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindDiffuseLight
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindDiffuseLight:
		return "diffuse_light"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Material is a closed set of surface responses. Only the fields used by
// Kind are meaningful: Albedo for lambertian and metal, Fuzz for metal,
// RefractiveIndex for dielectric and Emission for diffuse lights.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3
	Emission        core.Vec3
	Fuzz            float64
	RefractiveIndex float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Scatter returns the next ray of the path and its attenuation. It reports
// false when the path terminates at this surface.
func (m *Material) Scatter(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, random)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, random)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, random)
	default:
		return ScatterResult{}, false
	}
}

// Emitted returns the radiance emitted by the surface. Only diffuse lights emit.
func (m *Material) Emitted() core.Vec3 {
	if m.Kind == KindDiffuseLight {
		return m.Emission
	}
	return core.Vec3{}
}

// IsEmissive reports whether the material emits light
func (m *Material) IsEmissive() bool {
	return m.Kind == KindDiffuseLight
}
