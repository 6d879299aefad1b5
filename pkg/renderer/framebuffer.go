package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-wknder/pkg/core"
)

// Framebuffer holds linear RGB radiance per pixel, row-major with the top row first
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color at (x, y), with y counted from the top
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the linear color at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// QuantizeChannel maps a linear value to 8 bits: clamp to [0,1], scale by 255.99, truncate.
// NaN maps to 0.
func QuantizeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(max(0, min(1, v)) * 255.99)
}

// toDisplay applies optional square-root gamma
func toDisplay(c core.Vec3, gamma bool) core.Vec3 {
	if gamma {
		return c.Clamp(0, 1).GammaCorrect(2.0)
	}
	return c
}

// RGB8 returns a flat row-major buffer of 8-bit RGB triples, top row first
func (fb *Framebuffer) RGB8(gamma bool) []byte {
	buf := make([]byte, 0, len(fb.Pixels)*3)
	for _, p := range fb.Pixels {
		p = toDisplay(p, gamma)
		buf = append(buf, QuantizeChannel(p.X), QuantizeChannel(p.Y), QuantizeChannel(p.Z))
	}
	return buf
}

// ToImage converts the framebuffer to an opaque RGBA image for encoders
func (fb *Framebuffer) ToImage(gamma bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := toDisplay(fb.At(x, y), gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: QuantizeChannel(p.X),
				G: QuantizeChannel(p.Y),
				B: QuantizeChannel(p.Z),
				A: 255,
			})
		}
	}
	return img
}

// AverageLuminance returns the mean linear luminance of all pixels
func (fb *Framebuffer) AverageLuminance() float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range fb.Pixels {
		total += p.Luminance()
	}
	return total / float64(len(fb.Pixels))
}
