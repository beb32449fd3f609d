package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Plane is a single-channel luminance image with float64 intensities in the
// range [0, 255]. It is the working representation for the heuristic
// scorers and the shape detector: decoded once, then treated as read-only.
type Plane struct {
	Pix    [][]float64 // row-major, Pix[y][x]
	Width  int
	Height int
}

// NewPlane allocates a zeroed plane of the given size.
func NewPlane(width, height int) *Plane {
	pix := make([][]float64, height)
	for y := range pix {
		pix[y] = make([]float64, width)
	}
	return &Plane{Pix: pix, Width: width, Height: height}
}

// Luminance converts an image to a luminance plane using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B).
func Luminance(img image.Image) *Plane {
	bounds := img.Bounds()
	p := NewPlane(bounds.Dx(), bounds.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			p.Pix[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return p
}

// NormalizeSize downscales an image so neither side exceeds maxSide,
// preserving aspect ratio. Images already within bounds are returned as is.
func NormalizeSize(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxSide && bounds.Dy() <= maxSide {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

// ToGray renders the plane as an 8-bit grayscale image. Intensities are
// clamped to [0, 255] and rounded toward zero.
func (p *Plane) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			v := p.Pix[y][x]
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// PlaneFromGray converts an 8-bit grayscale image back to a plane.
func PlaneFromGray(img *image.Gray) *Plane {
	bounds := img.Bounds()
	p := NewPlane(bounds.Dx(), bounds.Dy())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Pix[y][x] = float64(img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
		}
	}
	return p
}

// Mean returns the average intensity of the plane, or 0 for an empty plane.
func (p *Plane) Mean() float64 {
	if p.Width == 0 || p.Height == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			sum += p.Pix[y][x]
		}
	}
	return sum / float64(p.Width*p.Height)
}

// Region extracts a rectangular sub-plane. Coordinates are clamped to the
// plane bounds; an empty intersection yields a 0x0 plane.
func (p *Plane) Region(x1, y1, x2, y2 int) *Plane {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > p.Width {
		x2 = p.Width
	}
	if y2 > p.Height {
		y2 = p.Height
	}
	if x2 <= x1 || y2 <= y1 {
		return NewPlane(0, 0)
	}
	sub := NewPlane(x2-x1, y2-y1)
	for y := y1; y < y2; y++ {
		copy(sub.Pix[y-y1], p.Pix[y][x1:x2])
	}
	return sub
}

// MeanSaturation estimates the average HSL saturation of an image by
// sampling every stride-th pixel in both directions. Values near 0 indicate
// monochrome content; photographic color content typically exceeds 0.2.
//
// A stride of 1 visits every pixel; larger strides trade accuracy for speed
// on big inputs. Strides below 1 are treated as 1.
func MeanSaturation(img image.Image, stride int) float64 {
	if stride < 1 {
		stride = 1
	}
	bounds := img.Bounds()
	var sum float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, _ := img.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			_, s, _ := c.Hsl()
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
