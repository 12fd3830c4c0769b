package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// triangleEpsilon is the determinant magnitude below which a ray is treated
// as parallel to the triangle
const triangleEpsilon = 0.001

type triangle struct {
	v0       core.Vec3
	e1, e2   core.Vec3 // v1-v0, v2-v0
	normal   core.Vec3 // unit normal of cross(e1, e2)
	box      core.AABB
	material material.ID
}

// AddTriangle stores a triangle with vertices v0, v1, v2. The face normal is
// normalize(cross(v1-v0, v2-v0)) and the triangle is one-sided: only rays
// travelling along the normal (direction·normal >= 0) can hit it.
func (a *Arena) AddTriangle(v0, v1, v2 core.Vec3, mat material.ID) Handle {
	e1 := v1.Subtract(v0)
	e2 := v2.Subtract(v0)
	a.triangles = append(a.triangles, triangle{
		v0:       v0,
		e1:       e1,
		e2:       e2,
		normal:   e1.Cross(e2).Normalize(),
		box:      core.NewAABBFromPoints(v0, v1, v2).Pad(rectPadding),
		material: mat,
	})
	return Handle{Kind: KindTriangle, Index: int32(len(a.triangles) - 1)}
}

// AddEquilateralTriangle stores an equilateral triangle with the given
// centroid and side length in the plane z = centroid.Z. Its base is parallel
// to the X axis with the apex pointing up, so the normal is +Z.
func (a *Arena) AddEquilateralTriangle(centroid core.Vec3, side float64, mat material.ID) Handle {
	height := math.Sqrt(3) / 2 * side
	base := centroid.Y - height/3

	v0 := core.NewVec3(centroid.X-side/2, base, centroid.Z)
	v1 := core.NewVec3(centroid.X+side/2, base, centroid.Z)
	v2 := core.NewVec3(centroid.X, base+height, centroid.Z)
	return a.AddTriangle(v0, v1, v2, mat)
}

// hit implements the Möller–Trumbore intersection test
func (tr *triangle) hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	pvec := ray.Direction.Cross(tr.e2)
	det := tr.e1.Dot(pvec)
	if math.Abs(det) < triangleEpsilon {
		return false
	}

	if ray.Direction.Dot(tr.normal) < 0 {
		return false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(tr.v0)

	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(tr.e1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	t := tr.e2.Dot(qvec) * invDet
	if t < tMin || t > tMax {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.Normal = tr.normal
	rec.U, rec.V = u, v
	rec.Material = tr.material
	return true
}
