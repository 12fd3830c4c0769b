package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Decorators move the ray into the child's frame instead of moving the child.

type translate struct {
	child  Handle
	offset core.Vec3
}

type flipNormal struct {
	child Handle
}

type rotateY struct {
	child    Handle
	sinTheta float64
	cosTheta float64
	box      core.AABB
}

// Translate wraps child so it appears displaced by offset
func (a *Arena) Translate(child Handle, offset core.Vec3) Handle {
	a.translates = append(a.translates, translate{child: child, offset: offset})
	return Handle{Kind: KindTranslate, Index: int32(len(a.translates) - 1)}
}

// FlipNormals wraps child so its reported normals are negated
func (a *Arena) FlipNormals(child Handle) Handle {
	a.flips = append(a.flips, flipNormal{child: child})
	return Handle{Kind: KindFlipNormal, Index: int32(len(a.flips) - 1)}
}

// RotateY wraps child so it appears rotated by degrees about the Y axis
func (a *Arena) RotateY(child Handle, degrees float64) Handle {
	radians := degrees * math.Pi / 180
	r := rotateY{
		child:    child,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	corners := a.BoundingBox(child).Corners()
	rotated := make([]core.Vec3, len(corners))
	for i, c := range corners {
		rotated[i] = r.toWorld(c)
	}
	r.box = core.NewAABBFromPoints(rotated...)

	a.rotations = append(a.rotations, r)
	return Handle{Kind: KindRotateY, Index: int32(len(a.rotations) - 1)}
}

// Unwrap follows decorators down to the primitive they wrap
func (a *Arena) Unwrap(h Handle) Handle {
	for {
		switch h.Kind {
		case KindTranslate:
			h = a.translates[h.Index].child
		case KindFlipNormal:
			h = a.flips[h.Index].child
		case KindRotateY:
			h = a.rotations[h.Index].child
		default:
			return h
		}
	}
}

func (t *translate) hit(a *Arena, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	moved := ray.WithOrigin(ray.Origin.Subtract(t.offset))
	if !a.Hit(t.child, moved, tMin, tMax, rec) {
		return false
	}
	rec.Point = rec.Point.Add(t.offset)
	return true
}

func (f *flipNormal) hit(a *Arena, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	if !a.Hit(f.child, ray, tMin, tMax, rec) {
		return false
	}
	rec.Normal = rec.Normal.Negate()
	return true
}

// toWorld rotates v by +theta about Y
func (r *rotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.Vec3{
		X: r.cosTheta*v.X + r.sinTheta*v.Z,
		Y: v.Y,
		Z: -r.sinTheta*v.X + r.cosTheta*v.Z,
	}
}

// toLocal rotates v by -theta about Y
func (r *rotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.Vec3{
		X: r.cosTheta*v.X - r.sinTheta*v.Z,
		Y: v.Y,
		Z: r.sinTheta*v.X + r.cosTheta*v.Z,
	}
}

func (r *rotateY) hit(a *Arena, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	local := core.NewRay(r.toLocal(ray.Origin), r.toLocal(ray.Direction))
	if !a.Hit(r.child, local, tMin, tMax, rec) {
		return false
	}
	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	return true
}
