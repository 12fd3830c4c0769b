package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// unitCube is a unit cube with counter-clockwise outward-facing quads
const unitCube = `ply
format ascii 1.0
element vertex 8
property float x
property float y
property float z
element face 6
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
0 0 1
1 0 1
1 1 1
0 1 1
4 0 3 2 1
4 4 5 6 7
4 0 1 5 4
4 3 7 6 2
4 0 4 7 3
4 1 2 6 5
`

func loadCube(t *testing.T) *loaders.Mesh {
	t.Helper()
	mesh, err := loaders.ReadPLY(strings.NewReader(unitCube))
	if err != nil {
		t.Fatal(err)
	}
	return mesh
}

func TestAddMesh_Placement(t *testing.T) {
	s := newScene("mesh", "")
	white := s.Materials.Add(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))

	slot := MeshSlot{Center: core.NewVec3(0, 0, -5), Size: 2}
	n, err := s.AddMesh(loadCube(t), slot, white)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 || len(s.Objects) != 12 {
		t.Fatalf("Expected 12 triangles, got %d (%d objects)", n, len(s.Objects))
	}

	expected := core.NewAABB(core.NewVec3(-1, -1, -6), core.NewVec3(1, 1, -4))
	if !s.Bounds().Equal(expected, 1e-3) {
		t.Errorf("Expected bounds %+v, got %+v", expected, s.Bounds())
	}
}

func TestAddMesh_OutwardFacing(t *testing.T) {
	s := newScene("mesh", "")
	white := s.Materials.Add(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	if _, err := s.AddMesh(loadCube(t), MeshSlot{Center: core.NewVec3(0, 0, -5), Size: 2}, white); err != nil {
		t.Fatal(err)
	}

	for _, accel := range []Accelerator{AcceleratorBVH, AcceleratorList} {
		world, err := s.World(accel)
		if err != nil {
			t.Fatal(err)
		}

		// Rays aimed slightly off the diagonal so they avoid shared edges
		var rec material.HitRecord
		ray := core.NewRay(core.NewVec3(0.1, 0.2, 0), core.NewVec3(0, 0, -1))
		if !world.Hit(ray, 0.001, math.Inf(1), &rec) {
			t.Fatalf("%s: expected outside ray to hit the front face", accel)
		}
		if math.Abs(rec.T-4) > 1e-9 || rec.Normal != core.NewVec3(0, 0, 1) {
			t.Errorf("%s: expected t=4 with normal +Z, got t=%v normal %v", accel, rec.T, rec.Normal)
		}

		ray = core.NewRay(core.NewVec3(5, 0.1, -4.8), core.NewVec3(-1, 0, 0))
		if !world.Hit(ray, 0.001, math.Inf(1), &rec) || rec.Normal != core.NewVec3(1, 0, 0) {
			t.Errorf("%s: expected side face hit with normal +X, got %v", accel, rec.Normal)
		}

		inside := core.NewRay(core.NewVec3(0.1, 0.2, -5), core.NewVec3(0, 0, -1))
		if world.Hit(inside, 0.001, math.Inf(1), &rec) {
			t.Errorf("%s: faces must not be hit from inside the mesh", accel)
		}
	}
}

func TestAddMesh_Empty(t *testing.T) {
	s := newScene("mesh", "")
	if _, err := s.AddMesh(&loaders.Mesh{}, MeshSlot{Size: 1}, 0); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("Expected ErrInvalidMesh, got %v", err)
	}
}

func TestLoadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.ply")
	if err := os.WriteFile(path, []byte(unitCube), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, name := range Names() {
		s, err := New(name, 42)
		if err != nil {
			t.Fatal(err)
		}
		if s.MeshSlot.Size <= 0 {
			t.Errorf("%s: scene has no mesh slot", name)
		}

		before := len(s.Objects)
		n, err := s.LoadMesh(path)
		if err != nil {
			t.Fatalf("%s: LoadMesh failed: %v", name, err)
		}
		if n != 12 || len(s.Objects) != before+12 {
			t.Errorf("%s: expected 12 new objects, got %d", name, len(s.Objects)-before)
		}
	}

	s, _ := New(DefaultScene, 42)
	if _, err := s.LoadMesh(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for missing file")
	}
}
