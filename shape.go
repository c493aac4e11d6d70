package iconwall

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498307936

// outline is a circle (corners == 2) or a regular polygon with its first
// vertex pointing straight up.
type outline struct {
	corners int
	radius  float64
}

// drawable reports whether the outline produces any shape.
func (o outline) drawable() bool {
	return o.corners >= 2 && o.radius > 0
}

// strokeOffset is how far the circumradius moves when the outline is
// offset by half a stroke width with mitered joins.
func (o outline) strokeOffset(width float64) float64 {
	half := width / 2
	if o.corners == 2 {
		return half
	}
	return half / math.Cos(math.Pi/float64(o.corners))
}

// fillMask rasterizes the filled outline centered at (cx, cy) in surface
// pixels, with logical lengths scaled by sx and sy. It returns the mask and
// the surface position of its origin.
func (o outline) fillMask(cx, cy, sx, sy float64) (*image.Alpha, image.Point) {
	return o.ringMask(cx, cy, sx, sy, o.radius, 0)
}

// strokeMask rasterizes a stroke of the given logical width centered on
// the outline.
func (o outline) strokeMask(cx, cy, sx, sy, width float64) (*image.Alpha, image.Point) {
	off := o.strokeOffset(width)
	return o.ringMask(cx, cy, sx, sy, o.radius+off, o.radius-off)
}

// ringMask fills the region between the outer and inner circumradii. An
// inner radius of zero or less fills the whole outer shape. The inner path
// runs the opposite way so its coverage cancels the outer one.
func (o outline) ringMask(cx, cy, sx, sy, outer, inner float64) (*image.Alpha, image.Point) {
	extX, extY := outer*sx+1, outer*sy+1
	minX, minY := int(math.Floor(cx-extX)), int(math.Floor(cy-extY))
	maxX, maxY := int(math.Ceil(cx+extX)), int(math.Ceil(cy+extY))
	w, h := maxX-minX, maxY-minY
	if outer <= 0 || w <= 0 || h <= 0 {
		return nil, image.Point{}
	}

	var z vector.Rasterizer
	z.Reset(w, h)
	ox, oy := cx-float64(minX), cy-float64(minY)
	o.trace(&z, ox, oy, outer*sx, outer*sy, false)
	if inner > 0 {
		o.trace(&z, ox, oy, inner*sx, inner*sy, true)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, image.Pt(minX, minY)
}

// trace adds one closed path with radii rx, ry around (cx, cy).
func (o outline) trace(z *vector.Rasterizer, cx, cy, rx, ry float64, reverse bool) {
	pt := func(angle float64) (float32, float32) {
		return float32(cx + rx*math.Cos(angle)), float32(cy + ry*math.Sin(angle))
	}

	dir := 1.0
	if reverse {
		dir = -1
	}
	start := -math.Pi / 2

	if o.corners == 2 {
		step := dir * math.Pi / 2
		x, y := pt(start)
		z.MoveTo(x, y)
		for i := 0; i < 4; i++ {
			a0 := start + float64(i)*step
			a1 := a0 + step
			// Tangents at a0 and a1 in the direction of travel.
			t0x, t0y := -math.Sin(a0)*dir, math.Cos(a0)*dir
			t1x, t1y := -math.Sin(a1)*dir, math.Cos(a1)*dir
			p0x, p0y := cx+rx*math.Cos(a0), cy+ry*math.Sin(a0)
			p3x, p3y := cx+rx*math.Cos(a1), cy+ry*math.Sin(a1)
			z.CubeTo(
				float32(p0x+kappa*rx*t0x), float32(p0y+kappa*ry*t0y),
				float32(p3x-kappa*rx*t1x), float32(p3y-kappa*ry*t1y),
				float32(p3x), float32(p3y),
			)
		}
		z.ClosePath()
		return
	}

	step := dir * 2 * math.Pi / float64(o.corners)
	x, y := pt(start)
	z.MoveTo(x, y)
	for i := 1; i < o.corners; i++ {
		x, y = pt(start + float64(i)*step)
		z.LineTo(x, y)
	}
	z.ClosePath()
}
