package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// cornellCamera looks into the open side of the 555-unit box
var cornellCamera = renderer.CameraConfig{
	LookFrom: core.NewVec3(278, 278, -800),
	LookAt:   core.NewVec3(278, 278, 0),
	Up:       core.NewVec3(0, 1, 0),
	VFov:     40,
}

// NewCornellScene creates the Cornell box with two rotated white blocks and
// a ceiling light
func NewCornellScene() *Scene {
	s := newScene("cornell", "Cornell box with two rotated blocks")
	buildCornellBox(s)
	return s
}

// NewCornellTriangleScene creates the Cornell box with a blue equilateral
// triangle floating in front of the blocks
func NewCornellTriangleScene() *Scene {
	s := newScene("cornell-triangle", "Cornell box with two rotated blocks and a blue triangle")
	buildCornellBox(s)

	blue := s.Materials.Add(material.NewLambertian(core.NewVec3(0.12, 0.30, 0.90)))
	s.add(s.Arena.AddEquilateralTriangle(core.NewVec3(278, 368, 100), 120, blue))
	return s
}

func buildCornellBox(s *Scene) {
	red := s.Materials.Add(material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)))
	white := s.Materials.Add(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	green := s.Materials.Add(material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)))
	light := s.Materials.Add(material.NewDiffuseLight(core.NewVec3(15, 15, 15)))

	a := s.Arena
	s.add(
		a.FlipNormals(a.AddYZRect(0, 555, 0, 555, 555, green)), // left wall
		a.AddYZRect(0, 555, 0, 555, 0, red),                    // right wall
		a.AddXZRect(213, 343, 227, 332, 554, light),            // ceiling light
		a.FlipNormals(a.AddXZRect(0, 555, 0, 555, 555, white)), // ceiling
		a.AddXZRect(0, 555, 0, 555, 0, white),                  // floor
		a.FlipNormals(a.AddXYRect(0, 555, 0, 555, 555, white)), // back wall
	)

	short := a.AddBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	tall := a.AddBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	s.add(
		a.Translate(a.RotateY(short, -18), core.NewVec3(130, 0, 65)),
		a.Translate(a.RotateY(tall, 15), core.NewVec3(265, 0, 295)),
	)

	s.Camera = cornellCamera
	s.MeshSlot = MeshSlot{Center: core.NewVec3(212, 226, 147), Size: 120} // on the short block
}
