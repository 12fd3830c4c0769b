package core

// Ray represents a ray with an origin and direction. The reciprocal of the
// direction and its length are computed once by NewRay so that slab tests and
// plane intersections never divide.
//
// A zero direction component yields a ±Inf reciprocal on that axis; the slab
// test in AABB.Hit relies on this to accept or reject the axis.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	DirLength    float64
}

// NewRay creates a new ray and caches its reciprocal direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{1.0 / direction.X, 1.0 / direction.Y, 1.0 / direction.Z},
		DirLength:    direction.Length(),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// WithOrigin returns a copy of the ray moved to a new origin. The cached
// direction data stays valid since the direction does not change.
func (r Ray) WithOrigin(origin Vec3) Ray {
	r.Origin = origin
	return r
}
