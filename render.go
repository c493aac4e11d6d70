package iconwall

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wbrown/iconwall/config"
	"github.com/wbrown/iconwall/imageutil"
)

// ErrInvalidPixelRatio is returned for a non-positive device pixel ratio.
var ErrInvalidPixelRatio = errors.New("iconwall: device pixel ratio must be positive")

// Surface is a raster target with a logical size. Drawing happens in
// logical coordinates; ScaleX and ScaleY map them to pixels.
type Surface struct {
	*imageutil.RGBAImage
	LogicalWidth  int
	LogicalHeight int
	ScaleX        float64
	ScaleY        float64
}

// NewSurface allocates a surface for a logical width x height canvas at
// the given device pixel ratio.
func NewSurface(width, height int, dpr float64) (*Surface, error) {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPixelRatio, dpr)
	}
	pw := int(math.Round(float64(width) * dpr))
	ph := int(math.Round(float64(height) * dpr))
	return NewScaledSurface(width, height, pw, ph)
}

// NewScaledSurface allocates a pixelWidth x pixelHeight surface showing a
// width x height logical canvas.
func NewScaledSurface(width, height, pixelWidth, pixelHeight int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("iconwall: canvas size must be positive, got %dx%d", width, height)
	}
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return nil, fmt.Errorf("iconwall: surface size must be positive, got %dx%d", pixelWidth, pixelHeight)
	}
	return &Surface{
		RGBAImage:     imageutil.NewRGBAImage(pixelWidth, pixelHeight),
		LogicalWidth:  width,
		LogicalHeight: height,
		ScaleX:        float64(pixelWidth) / float64(width),
		ScaleY:        float64(pixelHeight) / float64(height),
	}, nil
}

// Image returns the pixels of s.
func (s *Surface) Image() *image.RGBA {
	return s.RGBA
}

// Renderer paints populated grids onto surfaces.
type Renderer struct {
	atlas *FontAtlas
}

// NewRenderer returns a renderer drawing glyphs from atlas.
func NewRenderer(atlas *FontAtlas) *Renderer {
	return &Renderer{atlas: atlas}
}

// Render clears dst to background and draws every symbol cell of grid in
// row-major order: shape fill, shape stroke, then the glyph. The same grid
// and settings always produce the same pixels.
func (r *Renderer) Render(dst *Surface, grid *Grid, shape config.ShapeConfig, fontSize float64, background color.NRGBA) {
	dst.Fill(background)

	o := outline{corners: shape.Corners, radius: shape.Radius}
	// Glyphs follow the vertical scale; export sizes keep the aspect ratio
	// in practice.
	glyphSize := fontSize * dst.ScaleY

	grid.Each(func(_, _ int, c Cell) {
		if !c.IsSymbol() {
			return
		}
		cx, cy := c.X*dst.ScaleX, c.Y*dst.ScaleY

		if o.drawable() {
			if mask, at := o.fillMask(cx, cy, dst.ScaleX, dst.ScaleY); mask != nil {
				dst.DrawMask(mask, at, imageutil.WithOpacity(c.ShapeColor, c.ShapeFillOpacity))
			}
			if shape.StrokeWidth > 0 {
				if mask, at := o.strokeMask(cx, cy, dst.ScaleX, dst.ScaleY, shape.StrokeWidth); mask != nil {
					dst.DrawMask(mask, at, imageutil.WithOpacity(c.ShapeStrokeColor, c.ShapeStrokeOpacity))
				}
			}
		}

		if c.Char == "" || r.atlas == nil || glyphSize <= 0 {
			return
		}
		g := r.atlas.glyph(c.Char, glyphSize)
		at := image.Pt(int(math.Round(cx+g.offX)), int(math.Round(cy+g.offY)))
		dst.DrawMask(g.mask, at, imageutil.WithOpacity(c.IconColor, c.IconOpacity))
	})
}
