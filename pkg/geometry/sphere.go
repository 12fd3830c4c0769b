package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

type sphere struct {
	center   core.Vec3
	radius   float64
	material material.ID
}

// AddSphere stores a sphere and returns its handle. A negative radius keeps
// the surface but turns its normals inward.
func (a *Arena) AddSphere(center core.Vec3, radius float64, mat material.ID) Handle {
	a.spheres = append(a.spheres, sphere{center: center, radius: radius, material: mat})
	return Handle{Kind: KindSphere, Index: int32(len(a.spheres) - 1)}
}

func (s *sphere) hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	rec.Normal = rec.Point.Subtract(s.center).Divide(s.radius)
	rec.Material = s.material
	return true
}

func (s *sphere) boundingBox() core.AABB {
	r := math.Abs(s.radius)
	radius := core.NewVec3(r, r, r)
	return core.AABB{Min: s.center.Subtract(radius), Max: s.center.Add(radius)}
}
