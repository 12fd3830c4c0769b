package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

const inspectEpsilon = 0.001

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties"`
}

// Inspector answers which object is visible through a pixel of the image
type Inspector struct {
	scene         *scene.Scene
	world         geometry.Hittable
	camera        *renderer.Camera
	width, height int
}

// NewInspector creates an inspector for a width x height render of sc
// through camera. world must be built from sc.
func NewInspector(sc *scene.Scene, world geometry.Hittable, camera *renderer.Camera, width, height int) *Inspector {
	return &Inspector{scene: sc, world: world, camera: camera, width: width, height: height}
}

// Inspect casts an unjittered ray through the center of pixel (x, y), with
// row 0 at the top of the image, and describes the first surface it hits.
func (in *Inspector) Inspect(x, y int) (InspectResponse, error) {
	if x < 0 || x >= in.width || y < 0 || y >= in.height {
		return InspectResponse{}, fmt.Errorf("pixel (%d,%d) outside %dx%d image", x, y, in.width, in.height)
	}

	u := (float64(x) + 0.5) / float64(in.width)
	v := (float64(in.height-1-y) + 0.5) / float64(in.height)
	ray := in.camera.GetRay(u, v)

	var rec material.HitRecord
	if !in.world.Hit(ray, inspectEpsilon, math.Inf(1), &rec) {
		return InspectResponse{Hit: false, Properties: map[string]any{}}, nil
	}

	mat := in.scene.Materials.Get(rec.Material)
	response := InspectResponse{
		Hit:          true,
		MaterialType: mat.Kind.String(),
		GeometryType: in.geometryAt(ray, rec.T),
		Point:        vecArray(rec.Point),
		Normal:       vecArray(rec.Normal),
		Distance:     rec.Point.Subtract(ray.Origin).Length(),
		FrontFace:    ray.Direction.Dot(rec.Normal) < 0,
		Properties:   materialProperties(mat),
	}
	return response, nil
}

// geometryAt finds the top-level object hit at t. The acceleration structure
// only reports the hit record, so each object is tested again.
func (in *Inspector) geometryAt(ray core.Ray, t float64) string {
	arena := in.scene.Arena
	for _, h := range in.scene.Objects {
		var rec material.HitRecord
		if arena.Hit(h, ray, inspectEpsilon, t+inspectEpsilon, &rec) && rec.T == t {
			return arena.Unwrap(h).Kind.String()
		}
	}
	return "unknown"
}

func materialProperties(mat *material.Material) map[string]any {
	properties := make(map[string]any)
	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	case material.KindDiffuseLight:
		properties["emission"] = vecArray(mat.Emission)
		properties["color"] = hexColor(mat.Emission)
	}
	return properties
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	channel := func(c float64) int {
		return int(math.Round(math.Min(math.Max(c, 0), 1) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(v.X), channel(v.Y), channel(v.Z))
}

// handleInspect serves /api/inspect?x=&y=
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if s.Inspector == nil {
		http.Error(w, "inspection not available", http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	x, errX := strconv.Atoi(query.Get("x"))
	y, errY := strconv.Atoi(query.Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be integers", http.StatusBadRequest)
		return
	}

	response, err := s.Inspector.Inspect(x, y)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, response)
}
