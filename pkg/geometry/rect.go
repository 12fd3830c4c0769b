package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Plane selects the axis-aligned plane a rectangle lies in.
type Plane uint8

const (
	PlaneXY Plane = iota // fixed Z
	PlaneXZ              // fixed Y
	PlaneYZ              // fixed X
)

// rectPadding gives flat rectangles a non-zero bounding box thickness
const rectPadding = 0.0001

// axes returns the two in-plane axes and the fixed axis
func (p Plane) axes() (int, int, int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

type rect struct {
	a, b, fixed int     // axis indices
	a0, a1      float64 // bounds on axis a
	b0, b1      float64 // bounds on axis b
	k           float64 // position on the fixed axis
	material    material.ID
}

// AddRect stores an axis-aligned rectangle spanning [a0,a1]×[b0,b1] on the
// plane's two in-plane axes at offset k on the fixed axis. Its normal is the
// positive unit vector of the fixed axis. Reversed bounds are reordered.
func (a *Arena) AddRect(plane Plane, a0, a1, b0, b1, k float64, mat material.ID) Handle {
	axisA, axisB, fixed := plane.axes()
	a0, a1 = min(a0, a1), max(a0, a1)
	b0, b1 = min(b0, b1), max(b0, b1)
	a.rects = append(a.rects, rect{
		a: axisA, b: axisB, fixed: fixed,
		a0: a0, a1: a1, b0: b0, b1: b1, k: k,
		material: mat,
	})
	return Handle{Kind: KindRect, Index: int32(len(a.rects) - 1)}
}

// AddXYRect stores a rectangle in the plane z = k
func (a *Arena) AddXYRect(x0, x1, y0, y1, k float64, mat material.ID) Handle {
	return a.AddRect(PlaneXY, x0, x1, y0, y1, k, mat)
}

// AddXZRect stores a rectangle in the plane y = k
func (a *Arena) AddXZRect(x0, x1, z0, z1, k float64, mat material.ID) Handle {
	return a.AddRect(PlaneXZ, x0, x1, z0, z1, k, mat)
}

// AddYZRect stores a rectangle in the plane x = k
func (a *Arena) AddYZRect(y0, y1, z0, z1, k float64, mat material.ID) Handle {
	return a.AddRect(PlaneYZ, y0, y1, z0, z1, k, mat)
}

func (r *rect) hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	t := (r.k - ray.Origin.Axis(r.fixed)) * ray.InvDirection.Axis(r.fixed)

	// Also rejects NaN from a parallel ray starting on the plane
	if !(t >= tMin && t <= tMax) {
		return false
	}

	pa := ray.Origin.Axis(r.a) + t*ray.Direction.Axis(r.a)
	pb := ray.Origin.Axis(r.b) + t*ray.Direction.Axis(r.b)
	if pa < r.a0 || pa > r.a1 || pb < r.b0 || pb > r.b1 {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.Normal = core.Vec3{}.WithAxis(r.fixed, 1)
	rec.Material = r.material
	return true
}

func (r *rect) boundingBox() core.AABB {
	min := core.Vec3{}.WithAxis(r.a, r.a0).WithAxis(r.b, r.b0).WithAxis(r.fixed, r.k-rectPadding)
	max := core.Vec3{}.WithAxis(r.a, r.a1).WithAxis(r.b, r.b1).WithAxis(r.fixed, r.k+rectPadding)
	return core.AABB{Min: min, Max: max}
}
