package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Buffer accumulates per-pixel radiance sums. Row 0 is the bottom of the
// image, matching camera v = 0.
//
// Workers write disjoint pixels without locking. Reads while rendering may
// observe a partially updated frame; reads after the workers are joined see
// every write.
type Buffer struct {
	width, height int
	samples       int
	data          []core.Vec3
}

// NewBuffer creates a zeroed buffer. samples is the per-pixel sample count
// the sums are normalised by.
func NewBuffer(width, height, samples int) *Buffer {
	return &Buffer{
		width:   width,
		height:  height,
		samples: samples,
		data:    make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *Buffer) Height() int { return b.height }

// Samples returns the per-pixel sample count used for normalisation
func (b *Buffer) Samples() int { return b.samples }

// Set stores the radiance sum for pixel (x, y)
func (b *Buffer) Set(x, y int, sum core.Vec3) {
	b.data[y*b.width+x] = sum
}

// Add accumulates radiance into pixel (x, y)
func (b *Buffer) Add(x, y int, radiance core.Vec3) {
	i := y*b.width + x
	b.data[i] = b.data[i].Add(radiance)
}

// Sum returns the raw radiance sum for pixel (x, y)
func (b *Buffer) Sum(x, y int) core.Vec3 {
	return b.data[y*b.width+x]
}

// RGBA returns the display color for image coordinates (x, y), where row 0
// is the top of the image. Each channel is 255.99·sqrt(sum/samples).
func (b *Buffer) RGBA(x, y int) color.RGBA {
	sum := b.data[(b.height-1-y)*b.width+x]
	return color.RGBA{
		R: b.channel(sum.X),
		G: b.channel(sum.Y),
		B: b.channel(sum.Z),
		A: 255,
	}
}

func (b *Buffer) channel(sum float64) uint8 {
	v := 255.99 * math.Sqrt(sum/float64(b.samples))
	if math.IsNaN(v) {
		return 0
	}
	return uint8(core.Clamp(v, 0, 255))
}

// Image converts the whole buffer to an RGBA image with row 0 at the top
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.SetRGBA(x, y, b.RGBA(x, y))
		}
	}
	return img
}
