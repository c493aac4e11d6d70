// Package imageutil provides the raster helpers used by the renderer:
// an RGBA image wrapper, mask compositing and image I/O.
package imageutil

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to RGBAImage.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(rgba.RGBA, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// Fill replaces every pixel with c.
func (img *RGBAImage) Fill(c color.Color) {
	draw.Draw(img.RGBA, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// Equal reports whether both images have the same size and pixels.
func (img *RGBAImage) Equal(other *RGBAImage) bool {
	if img.Bounds() != other.Bounds() {
		return false
	}
	for y := 0; y < img.Height(); y++ {
		a := img.Pix[y*img.Stride : y*img.Stride+img.Width()*4]
		b := other.Pix[y*other.Stride : y*other.Stride+other.Width()*4]
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// WithOpacity scales the alpha of c by opacity, clamped to [0,1].
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// DrawMask composites c through mask onto img. The mask's origin is placed
// at at; parts falling outside img are clipped.
func (img *RGBAImage) DrawMask(mask *image.Alpha, at image.Point, c color.NRGBA) {
	if mask == nil || c.A == 0 {
		return
	}
	r := mask.Bounds().Sub(mask.Bounds().Min).Add(at)
	draw.DrawMask(img.RGBA, r, image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}
