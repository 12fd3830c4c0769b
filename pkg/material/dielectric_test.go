package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		index    float64
		expected float64
	}{
		{"Glass at normal incidence", 1.0, 1.5, 0.04},
		{"Glass at grazing incidence", 0.0, 1.5, 1.0},
		{"Index matched at normal incidence", 1.0, 1.0, 0.0},
		{"Index matched at grazing incidence", 0.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.index)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

// A dielectric with index 1 must pass every ray straight through.
func TestDielectric_IndexMatchedPassesStraight(t *testing.T) {
	glass := NewDielectric(1.0)
	random := rand.New(rand.NewSource(42))

	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(-0.3, 0.9, -0.2),
		core.NewVec3(0, 0, 1), // exiting
		core.NewVec3(0.5, -0.5, 0.2),
	}
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	for _, dir := range directions {
		for i := 0; i < 20; i++ {
			ray := core.NewRay(dir.Negate(), dir)
			scatter, ok := glass.Scatter(ray, hit, random)
			if !ok {
				t.Fatal("Dielectric should always scatter")
			}
			got := scatter.Scattered.Direction.Normalize()
			if got.Subtract(dir.Normalize()).Length() > 1e-9 {
				t.Fatalf("direction %v deviated to %v", dir, got)
			}
			if scatter.Attenuation != core.NewVec3(1, 1, 1) {
				t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
			}
		}
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	random := rand.New(rand.NewSource(42))

	// Exiting the glass at a steep angle: sin > 1/1.5
	dir := core.NewVec3(1, 0, 0.2)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	ray := core.NewRay(core.NewVec3(-1, 0, -0.2), dir)

	for i := 0; i < 20; i++ {
		scatter, ok := glass.Scatter(ray, hit, random)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if scatter.Scattered.Direction.Z >= 0 {
			t.Fatalf("Expected reflection back into the medium, got %v", scatter.Scattered.Direction)
		}
	}
}

func TestDielectric_RefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	dir := core.NewVec3(1, 0, -1).Normalize()
	ray := core.NewRay(dir.Negate(), dir)

	refracted := 0
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		scatter, _ := glass.Scatter(ray, hit, random)
		out := scatter.Scattered.Direction.Normalize()
		if out.Z < 0 {
			refracted++
			// Snell: sin(out) = sin(in) / 1.5
			expectedSin := math.Sin(math.Pi/4) / 1.5
			if math.Abs(out.X-expectedSin) > 1e-9 {
				t.Fatalf("Expected sin %f, got %f", expectedSin, out.X)
			}
		}
	}
	if refracted == 0 {
		t.Error("Expected most rays to refract at 45 degrees")
	}
}
