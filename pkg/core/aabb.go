package core

import "math"

// AABB represents an axis-aligned bounding box. Every constructor keeps
// Min <= Max on all axes.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from two opposite corners in any order
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if the ray's parametric interval [tMin, tMax] overlaps this box
// using the slab method. It multiplies by the ray's cached reciprocal
// direction instead of dividing.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	invD := ray.InvDirection

	t0 := (aabb.Min.X - ray.Origin.X) * invD.X
	t1 := (aabb.Max.X - ray.Origin.X) * invD.X
	if invD.X < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	if tMax <= tMin {
		return false
	}

	t0 = (aabb.Min.Y - ray.Origin.Y) * invD.Y
	t1 = (aabb.Max.Y - ray.Origin.Y) * invD.Y
	if invD.Y < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	if tMax <= tMin {
		return false
	}

	t0 = (aabb.Min.Z - ray.Origin.Z) * invD.Z
	t1 = (aabb.Max.Z - ray.Origin.Z) * invD.Z
	if invD.Z < 0 {
		t0, t1 = t1, t0
	}
	if t0 > tMin {
		tMin = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	return tMax > tMin
}

// SurroundingBox returns the smallest AABB enclosing both boxes
func SurroundingBox(a, b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Translate returns the box moved by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{Min: aabb.Min.Add(offset), Max: aabb.Max.Add(offset)}
}

// Pad widens every axis thinner than epsilon so the box has non-zero thickness
func (aabb AABB) Pad(epsilon float64) AABB {
	for axis := 0; axis < 3; axis++ {
		lo, hi := aabb.Min.Axis(axis), aabb.Max.Axis(axis)
		if hi-lo < epsilon {
			aabb.Min = aabb.Min.WithAxis(axis, lo-epsilon)
			aabb.Max = aabb.Max.WithAxis(axis, hi+epsilon)
		}
	}
	return aabb
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Corners returns the eight corner points of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := range corners {
		x, y, z := aabb.Min.X, aabb.Min.Y, aabb.Min.Z
		if i&1 != 0 {
			x = aabb.Max.X
		}
		if i&2 != 0 {
			y = aabb.Max.Y
		}
		if i&4 != 0 {
			z = aabb.Max.Z
		}
		corners[i] = Vec3{x, y, z}
	}
	return corners
}

// Equal reports whether two boxes have identical corners within tolerance
func (aabb AABB) Equal(other AABB, tolerance float64) bool {
	return math.Abs(aabb.Min.X-other.Min.X) <= tolerance &&
		math.Abs(aabb.Min.Y-other.Min.Y) <= tolerance &&
		math.Abs(aabb.Min.Z-other.Min.Z) <= tolerance &&
		math.Abs(aabb.Max.X-other.Max.X) <= tolerance &&
		math.Abs(aabb.Max.Y-other.Max.Y) <= tolerance &&
		math.Abs(aabb.Max.Z-other.Max.Z) <= tolerance
}
