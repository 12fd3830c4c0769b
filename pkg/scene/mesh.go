package scene

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// MeshSlot is the region of a scene reserved for a loaded model
type MeshSlot struct {
	Center core.Vec3
	Size   float64 // Length of the model's longest side once placed
}

// AddMesh scales mesh uniformly so its longest side equals slot.Size,
// centers it on slot.Center and adds every face as a triangle. Triangles only
// accept rays travelling along their stored normal, so faces are stored with
// reversed winding and their normals flipped back to point outward. It
// returns the number of triangles added.
func (s *Scene) AddMesh(mesh *loaders.Mesh, slot MeshSlot, mat material.ID) (int, error) {
	if len(mesh.Faces) == 0 {
		return 0, fmt.Errorf("%w: mesh has no faces", ErrInvalidMesh)
	}

	bounds := mesh.Bounds()
	extent := bounds.Size().Axis(bounds.LongestAxis())
	scale := 1.0
	if extent > 0 && slot.Size > 0 {
		scale = slot.Size / extent
	}
	center := bounds.Center()

	place := func(v core.Vec3) core.Vec3 {
		return v.Subtract(center).Multiply(scale).Add(slot.Center)
	}

	a := s.Arena
	for _, face := range mesh.Faces {
		v0, v1, v2 := place(mesh.Vertices[face[0]]), place(mesh.Vertices[face[1]]), place(mesh.Vertices[face[2]])
		s.add(a.FlipNormals(a.AddTriangle(v0, v2, v1, mat)))
	}

	logger.Debugf("placed %d triangles in %q at %v (scale %.3g)", len(mesh.Faces), s.Name, slot.Center, scale)
	return len(mesh.Faces), nil
}

// LoadMesh reads a PLY model and places it in the scene's mesh slot with a
// white diffuse material
func (s *Scene) LoadMesh(path string) (int, error) {
	mesh, err := loaders.LoadPLY(path)
	if err != nil {
		return 0, err
	}
	white := s.Materials.Add(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	return s.AddMesh(mesh, s.MeshSlot, white)
}
