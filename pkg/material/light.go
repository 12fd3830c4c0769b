package material

import "github.com/df07/go-tile-pathtracer/pkg/core"

// NewDiffuseLight creates an emissive material. Lights never scatter.
func NewDiffuseLight(emission core.Vec3) Material {
	return Material{Kind: KindDiffuseLight, Emission: emission}
}
