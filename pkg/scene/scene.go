package scene

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/log"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Accelerator selects the structure used to find the nearest hit
type Accelerator string

const (
	AcceleratorBVH  Accelerator = "bvh"
	AcceleratorList Accelerator = "list"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Arena       *geometry.Arena
	Materials   *material.Table
	Objects     []geometry.Handle // Top-level primitives
	Camera      renderer.CameraConfig
	MeshSlot    MeshSlot // Where a loaded model is placed
}

// newScene creates an empty scene with a fresh arena and material table
func newScene(name, description string) *Scene {
	return &Scene{
		Name:        name,
		Description: description,
		Arena:       geometry.NewArena(),
		Materials:   material.NewTable(),
	}
}

// add records handles as top-level objects of the scene
func (s *Scene) add(handles ...geometry.Handle) {
	s.Objects = append(s.Objects, handles...)
}

// World builds the acceleration structure over the scene objects
func (s *Scene) World(accel Accelerator) (geometry.Hittable, error) {
	switch accel {
	case AcceleratorBVH, "":
		return geometry.NewBVH(s.Arena, s.Objects), nil
	case AcceleratorList:
		return geometry.NewList(s.Arena, s.Objects), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccelerator, accel)
	}
}

// NewCamera creates the scene camera for an image of the given size
func (s *Scene) NewCamera(width, height int) *renderer.Camera {
	config := s.Camera
	config.AspectRatio = float64(width) / float64(height)
	return renderer.NewCamera(config)
}

// Bounds returns the box enclosing every top-level object
func (s *Scene) Bounds() core.AABB {
	var bounds core.AABB
	for i, h := range s.Objects {
		if i == 0 {
			bounds = s.Arena.BoundingBox(h)
		} else {
			bounds = core.SurroundingBox(bounds, s.Arena.BoundingBox(h))
		}
	}
	return bounds
}
