package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// NewLightPanelScene creates a single white light rectangle filling the
// view. Every camera ray hits it, so the image is uniformly white.
func NewLightPanelScene() *Scene {
	s := newScene("light-panel", "Single light rectangle filling the view")

	light := s.Materials.Add(material.NewDiffuseLight(core.NewVec3(1, 1, 1)))
	s.add(s.Arena.AddXYRect(-1000, 1000, -1000, 1000, -10, light))

	s.Camera = renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60,
	}
	s.MeshSlot = MeshSlot{Center: core.NewVec3(0, 0, -5), Size: 2}
	return s
}
