package geometry

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Kind identifies the primitive variant a Handle points to.
type Kind uint8

const (
	KindSphere Kind = iota
	KindRect
	KindBox
	KindTriangle
	KindTranslate
	KindFlipNormal
	KindRotateY
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindRect:
		return "rect"
	case KindBox:
		return "box"
	case KindTriangle:
		return "triangle"
	case KindTranslate:
		return "translate"
	case KindFlipNormal:
		return "flip_normal"
	case KindRotateY:
		return "rotate_y"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Handle is a stable reference to a primitive stored in an Arena.
type Handle struct {
	Kind  Kind
	Index int32
}

// Hittable is anything a ray can be tested against. Hit fills rec and
// returns true for the closest intersection with t in [tMin, tMax].
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool
	BoundingBox() core.AABB
}

// Arena owns every primitive of a scene in per-kind slices. Primitives and
// decorators reference each other through handles, so the arena is the only
// owner and is read-only once rendering starts.
type Arena struct {
	spheres    []sphere
	rects      []rect
	boxes      []box
	triangles  []triangle
	translates []translate
	flips      []flipNormal
	rotations  []rotateY
}

// NewArena creates an empty primitive arena
func NewArena() *Arena {
	return &Arena{}
}

// Hit dispatches the intersection query for h to its variant
func (a *Arena) Hit(h Handle, ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	switch h.Kind {
	case KindSphere:
		return a.spheres[h.Index].hit(ray, tMin, tMax, rec)
	case KindRect:
		return a.rects[h.Index].hit(ray, tMin, tMax, rec)
	case KindBox:
		return a.boxes[h.Index].hit(a, ray, tMin, tMax, rec)
	case KindTriangle:
		return a.triangles[h.Index].hit(ray, tMin, tMax, rec)
	case KindTranslate:
		return a.translates[h.Index].hit(a, ray, tMin, tMax, rec)
	case KindFlipNormal:
		return a.flips[h.Index].hit(a, ray, tMin, tMax, rec)
	case KindRotateY:
		return a.rotations[h.Index].hit(a, ray, tMin, tMax, rec)
	default:
		return false
	}
}

// BoundingBox returns the bounding box of the primitive referenced by h
func (a *Arena) BoundingBox(h Handle) core.AABB {
	switch h.Kind {
	case KindSphere:
		return a.spheres[h.Index].boundingBox()
	case KindRect:
		return a.rects[h.Index].boundingBox()
	case KindBox:
		return a.boxes[h.Index].boundingBox()
	case KindTriangle:
		return a.triangles[h.Index].box
	case KindTranslate:
		t := a.translates[h.Index]
		return a.BoundingBox(t.child).Translate(t.offset)
	case KindFlipNormal:
		return a.BoundingBox(a.flips[h.Index].child)
	case KindRotateY:
		return a.rotations[h.Index].box
	default:
		return core.AABB{}
	}
}
