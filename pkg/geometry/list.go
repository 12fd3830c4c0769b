package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// List tests a ray against every primitive in order. It is the reference
// accelerator the BVH must agree with.
type List struct {
	arena   *Arena
	handles []Handle
	box     core.AABB
}

// NewList creates a linear-scan accelerator over handles
func NewList(arena *Arena, handles []Handle) *List {
	list := &List{arena: arena, handles: append([]Handle(nil), handles...)}
	for i, h := range list.handles {
		if i == 0 {
			list.box = arena.BoundingBox(h)
		} else {
			list.box = core.SurroundingBox(list.box, arena.BoundingBox(h))
		}
	}
	return list
}

// Hit returns the closest intersection among all primitives
func (l *List) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for _, h := range l.handles {
		if l.arena.Hit(h, ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}
	return hitAnything
}

// BoundingBox returns the box enclosing every primitive
func (l *List) BoundingBox() core.AABB {
	return l.box
}

// Len returns the number of primitives in the list
func (l *List) Len() int {
	return len(l.handles)
}
