package scene

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// NewRandomSpheresScene creates a large ground sphere covered by a grid of
// small random spheres around three big ones
func NewRandomSpheresScene(random *rand.Rand) *Scene {
	s := newScene("random-spheres", "Grid of random small spheres around three large ones")
	a := s.Arena

	ground := s.Materials.Add(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.add(a.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	glass := s.Materials.Add(material.NewDielectric(1.5))
	for i := -11; i < 11; i++ {
		for j := -11; j < 11; j++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(i)+0.9*random.Float64(), 0.2, float64(j)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var mat material.ID
			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				mat = s.Materials.Add(material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				mat = s.Materials.Add(material.NewMetal(albedo, 0.5*random.Float64()))
			default:
				mat = glass
			}
			s.add(a.AddSphere(center, 0.2, mat))
		}
	}

	s.add(
		a.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		a.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.Materials.Add(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))),
		a.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.Materials.Add(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))),
	)

	// The background is black, so the scene carries its own light
	sky := s.Materials.Add(material.NewDiffuseLight(core.NewVec3(1.5, 1.5, 1.5)))
	s.add(a.AddXZRect(-50, 50, -50, 50, 30, sky))

	s.Camera = renderer.CameraConfig{
		LookFrom: core.NewVec3(13, 2, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20,
	}
	s.MeshSlot = MeshSlot{Center: core.NewVec3(2, 0.6, 2.2), Size: 1.2}
	return s
}
