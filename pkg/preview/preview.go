// Package preview draws in-progress frames: the partially rendered image
// with the tiles currently being worked on outlined and a progress caption.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

var (
	tileColor    = color.RGBA{255, 160, 0, 255}
	captionColor = color.RGBA{255, 255, 255, 255}
	shadowColor  = color.RGBA{0, 0, 0, 200}
)

// Source is a render whose state can be sampled while it runs
type Source interface {
	Preview() *image.RGBA
	ActiveTiles() []renderer.Tile
	Progress() float64
}

// Frame draws the current state of src. The image may be torn while the
// render is running.
func Frame(src Source) image.Image {
	return Draw(src.Preview(), src.ActiveTiles(), src.Progress())
}

// Draw overlays tile outlines and a progress caption onto img. Tile bounds
// are in buffer coordinates (row 0 at the bottom) and are flipped to match
// the image.
func Draw(img image.Image, active []renderer.Tile, progress float64) image.Image {
	dc := gg.NewContextForImage(img)
	height := float64(img.Bounds().Dy())

	dc.SetColor(tileColor)
	dc.SetLineWidth(1)
	for _, tile := range active {
		b := tile.Bounds
		top := height - float64(b.Max.Y)
		dc.DrawRectangle(float64(b.Min.X)+0.5, top+0.5, float64(b.Dx())-1, float64(b.Dy())-1)
		dc.Stroke()
	}

	caption := fmt.Sprintf("%.0f%%", progress*100)
	dc.SetColor(shadowColor)
	dc.DrawString(caption, 5, 15)
	dc.SetColor(captionColor)
	dc.DrawString(caption, 4, 14)

	return dc.Image()
}

// Encode writes img to w as PNG
func Encode(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}

// Save writes img to a PNG file
func Save(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
