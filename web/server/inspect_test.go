package server

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// inspectScene has a translated metal sphere in front of a grey wall that
// only covers the left half of the view
func inspectScene() *scene.Scene {
	sc := &scene.Scene{
		Name:      "inspect",
		Arena:     geometry.NewArena(),
		Materials: material.NewTable(),
		Camera: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 0),
			LookAt:   core.NewVec3(0, 0, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     60,
		},
	}
	metal := sc.Materials.Add(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	grey := sc.Materials.Add(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	sphere := sc.Arena.AddSphere(core.NewVec3(0, 0, 0), 1, metal)
	sc.Objects = []geometry.Handle{
		sc.Arena.Translate(sphere, core.NewVec3(0, 0, -5)),
		sc.Arena.AddXYRect(-100, 0, -100, 100, -10, grey),
	}
	return sc
}

func inspectServer(t *testing.T, sc *scene.Scene) *Server {
	t.Helper()
	world, err := sc.World(scene.AcceleratorBVH)
	if err != nil {
		t.Fatal(err)
	}
	s := NewServer(newMockRender(true), sc.Name, nil)
	s.Inspector = NewInspector(sc, world, sc.NewCamera(64, 32), 64, 32)
	return s
}

func inspect(t *testing.T, s *Server, path string) InspectResponse {
	t.Helper()
	rec := get(t, s, path)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatal(err)
	}
	return response
}

func near(a, b [3]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 0.1 {
			return false
		}
	}
	return true
}

func TestInspect_LightPanel(t *testing.T) {
	sc, err := scene.New("light-panel", 42)
	if err != nil {
		t.Fatal(err)
	}
	got := inspect(t, inspectServer(t, sc), "/api/inspect?x=32&y=16")

	if !got.Hit || got.GeometryType != "rect" || got.MaterialType != "diffuse_light" {
		t.Fatalf("Unexpected response %+v", got)
	}
	if math.Abs(got.Distance-10) > 0.01 {
		t.Errorf("Expected distance 10, got %f", got.Distance)
	}
	if got.Normal != [3]float64{0, 0, 1} || !got.FrontFace {
		t.Errorf("Expected front-facing normal (0,0,1), got %v front=%v", got.Normal, got.FrontFace)
	}
	emission, ok := got.Properties["emission"].([]any)
	if !ok || len(emission) != 3 || emission[0] != 1.0 || emission[1] != 1.0 || emission[2] != 1.0 {
		t.Errorf("Expected emission [1 1 1], got %v", got.Properties["emission"])
	}
}

func TestInspect_Objects(t *testing.T) {
	s := inspectServer(t, inspectScene())

	tests := []struct {
		name     string
		path     string
		hit      bool
		geometry string
		material string
		distance float64
	}{
		{"Sphere behind translate", "/api/inspect?x=32&y=16", true, "sphere", "metal", 4},
		{"Wall top left", "/api/inspect?x=0&y=0", true, "rect", "lambertian", 0},
		{"Miss top right", "/api/inspect?x=63&y=0", false, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inspect(t, s, tt.path)
			if got.Hit != tt.hit || got.GeometryType != tt.geometry || got.MaterialType != tt.material {
				t.Fatalf("Expected hit=%v %s/%s, got %+v", tt.hit, tt.geometry, tt.material, got)
			}
			if tt.distance > 0 && math.Abs(got.Distance-tt.distance) > 0.01 {
				t.Errorf("Expected distance %f, got %f", tt.distance, got.Distance)
			}
		})
	}

	sphere := inspect(t, s, "/api/inspect?x=32&y=16")
	if !near(sphere.Normal, [3]float64{0, 0, 1}) || !near(sphere.Point, [3]float64{0, 0, -4}) {
		t.Errorf("Unexpected sphere hit point %v normal %v", sphere.Point, sphere.Normal)
	}
	if sphere.Properties["fuzz"] != 0.3 || sphere.Properties["color"] != "#cc9933" {
		t.Errorf("Unexpected metal properties %v", sphere.Properties)
	}

	wall := inspect(t, s, "/api/inspect?x=0&y=0")
	if wall.Point[0] >= 0 || wall.Point[1] <= 0 || math.Abs(wall.Point[2]+10) > 1e-6 {
		t.Errorf("Expected top-left wall point, got %v", wall.Point)
	}
}

func TestInspect_Errors(t *testing.T) {
	s := inspectServer(t, inspectScene())

	tests := []struct {
		name string
		s    *Server
		path string
		code int
	}{
		{"Missing coordinates", s, "/api/inspect", http.StatusBadRequest},
		{"Not a number", s, "/api/inspect?x=a&y=1", http.StatusBadRequest},
		{"Column out of range", s, "/api/inspect?x=64&y=0", http.StatusBadRequest},
		{"Negative row", s, "/api/inspect?x=0&y=-1", http.StatusBadRequest},
		{"Not configured", NewServer(newMockRender(true), "test", nil), "/api/inspect?x=0&y=0", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := get(t, tt.s, tt.path); rec.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}
