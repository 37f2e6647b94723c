package renderer

import (
	"image"
	"image/color"
	"iter"

	"golang.org/x/image/draw"

	"github.com/df07/go-progressive-core/pkg/core"
)

// Pixel is one cell of the frame buffer. Sum is the running total of every
// sample's radiance; it is only divided by SubSamples for display.
type Pixel struct {
	X, Y       int
	Sum        core.Spectrum
	SubSamples int
}

// AddSubSample counts one more sample
func (p *Pixel) AddSubSample() { p.SubSamples++ }

// Accumulate adds radiance to the running sum
func (p *Pixel) Accumulate(s core.Spectrum) { p.Sum = p.Sum.Add(s) }

// Color returns the mean radiance
func (p *Pixel) Color() core.Spectrum {
	if p.SubSamples == 0 {
		return core.Spectrum{}
	}
	return p.Sum.Multiply(1.0 / float64(p.SubSamples))
}

// PixelIterable is a view over a set of pixels
type PixelIterable interface {
	Pixels() iter.Seq[*Pixel]
}

// FrameBuffer is the grid of accumulating pixels for a whole frame
type FrameBuffer struct {
	width, height int
	pixels        []Pixel
}

// NewFrameBuffer allocates a cleared frame buffer
func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidResolution
	}
	fb := &FrameBuffer{width: width, height: height, pixels: make([]Pixel, width*height)}
	fb.Clear()
	return fb, nil
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Bounds returns the frame rectangle
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// At returns the pixel at (x, y)
func (fb *FrameBuffer) At(x, y int) *Pixel {
	return &fb.pixels[y*fb.width+x]
}

// Clear zeroes every pixel
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = Pixel{X: i % fb.width, Y: i / fb.width}
	}
}

// Pixels iterates the whole frame in scanline order
func (fb *FrameBuffer) Pixels() iter.Seq[*Pixel] {
	return fb.Region(fb.Bounds()).Pixels()
}

// Region returns the view over r clipped to the frame
func (fb *FrameBuffer) Region(r image.Rectangle) Region {
	return Region{fb: fb, bounds: r.Intersect(fb.Bounds())}
}

// Region is a rectangular view into a FrameBuffer. Regions handed to
// different workers must not overlap.
type Region struct {
	fb     *FrameBuffer
	bounds image.Rectangle
}

// Bounds returns the clipped rectangle
func (r Region) Bounds() image.Rectangle { return r.bounds }

// Pixels iterates the region in scanline order
func (r Region) Pixels() iter.Seq[*Pixel] {
	return func(yield func(*Pixel) bool) {
		for y := r.bounds.Min.Y; y < r.bounds.Max.Y; y++ {
			for x := r.bounds.Min.X; x < r.bounds.Max.X; x++ {
				if !yield(r.fb.At(x, y)) {
					return
				}
			}
		}
	}
}

// Image converts the mean radiance of every pixel to 8-bit color
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for i := range fb.pixels {
		p := &fb.pixels[i]
		img.SetRGBA(p.X, p.Y, spectrumToRGBA(p.Color()))
	}
	return img
}

// spectrumToRGBA applies gamma 2 and clamps to the displayable range
func spectrumToRGBA(s core.Spectrum) color.RGBA {
	s = s.GammaCorrect(2.0)
	s = s.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * s.X),
		G: uint8(255 * s.Y),
		B: uint8(255 * s.Z),
		A: 255,
	}
}

// Resample scales img to width x height. Supersampled frames are reduced
// with a Catmull-Rom kernel; previews rendered below the output size are
// enlarged the same way.
func Resample(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if img.Bounds().Size() == dst.Bounds().Size() {
		draw.Copy(dst, image.Point{}, img, img.Bounds(), draw.Src, nil)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
