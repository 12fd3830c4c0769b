package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

type box struct {
	min, max core.Vec3
	faces    [6]Handle
}

// AddBox stores an axis-aligned box between two opposite corners. The box is
// built from six rectangles; the three on the minimum side are wrapped in
// FlipNormal so every face normal points outward.
func (a *Arena) AddBox(p0, p1 core.Vec3, mat material.ID) Handle {
	bounds := core.NewAABB(p0, p1)
	p0, p1 = bounds.Min, bounds.Max

	faces := [6]Handle{
		a.AddXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, mat),
		a.FlipNormals(a.AddXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, mat)),
		a.AddXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, mat),
		a.FlipNormals(a.AddXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, mat)),
		a.AddYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, mat),
		a.FlipNormals(a.AddYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, mat)),
	}

	a.boxes = append(a.boxes, box{min: p0, max: p1, faces: faces})
	return Handle{Kind: KindBox, Index: int32(len(a.boxes) - 1)}
}

func (b *box) hit(a *Arena, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for _, face := range b.faces {
		if a.Hit(face, ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}
	return hitAnything
}

func (b *box) boundingBox() core.AABB {
	return core.AABB{Min: b.min, Max: b.max}
}
