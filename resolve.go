package iconwall

import (
	"image/color"
	"math"

	"github.com/wbrown/iconwall/config"
)

// Shade classifies the outcome of Resolve.
type Shade uint8

const (
	// ShadeAbsent means the cell was culled and nothing is drawn.
	ShadeAbsent Shade = iota
	// ShadePale cells use the default colors, dimmed with distance.
	ShadePale
	// ShadeColored cells take their shape color from the nearest cluster.
	ShadeColored
)

func (s Shade) String() string {
	switch s {
	case ShadePale:
		return "pale"
	case ShadeColored:
		return "colored"
	default:
		return "absent"
	}
}

// Attributes are the visual properties of a drawn cell.
type Attributes struct {
	IconColor          color.NRGBA
	ShapeColor         color.NRGBA
	ShapeStrokeColor   color.NRGBA
	IconOpacity        float64
	ShapeFillOpacity   float64
	ShapeStrokeOpacity float64
}

// ColoredProbability is the chance that a cell at distance d from its
// nearest cluster is drawn colored: 1 at the center, falling linearly to 0
// at maxRadius and beyond.
func ColoredProbability(d, maxRadius float64) float64 {
	if maxRadius <= 0 || d >= maxRadius {
		return 0
	}
	return 1 - d/maxRadius
}

// DimFillOpacity interpolates a pale cell's fill opacity between the shape
// fill opacity next to a cluster and MinDimOpacity once d reaches
// MaxRadius*DimmingFactor. An infinite d yields MinDimOpacity.
func DimFillOpacity(d float64, cl config.ClusteringConfig, shape config.ShapeConfig) float64 {
	f := 1.0
	if reach := cl.MaxRadius * cl.DimmingFactor; reach > 0 {
		f = math.Min(1, d/reach)
	}
	return (1-f)*(shape.FillOpacity-cl.MinDimOpacity) + cl.MinDimOpacity
}

// StrokeFillRatio is StrokeOpacity/FillOpacity, or 0 when FillOpacity is 0.
func StrokeFillRatio(shape config.ShapeConfig) float64 {
	if shape.FillOpacity == 0 {
		return 0
	}
	return shape.StrokeOpacity / shape.FillOpacity
}

// Resolve decides how the lattice point (x, y) is drawn. Inside a cluster's
// radius one weighted coin flip may make it colored; colored cells skip
// the density cull. Every other cell survives with probability
// Symbols.Density and is then drawn pale.
func Resolve(rng Rand, x, y float64, clusters *ClusterSet, cfg *config.Config, colors *config.Colors) (Attributes, Shade) {
	nearest, d, ok := clusters.Nearest(x, y)

	if ok && d < cfg.Clustering.MaxRadius {
		if rng.Float64() < ColoredProbability(d, cfg.Clustering.MaxRadius) {
			return Attributes{
				IconColor:          colors.ColoredIcon,
				ShapeColor:         nearest.Color,
				ShapeStrokeColor:   nearest.Color,
				IconOpacity:        cfg.Symbols.DefaultIconOpacity,
				ShapeFillOpacity:   cfg.Clustering.ColoredOpacity,
				ShapeStrokeOpacity: cfg.Clustering.ColoredOpacity,
			}, ShadeColored
		}
	}

	// r in [0,1): density 1 keeps every pale cell, density 0 culls all.
	if rng.Float64() >= cfg.Symbols.Density {
		return Attributes{}, ShadeAbsent
	}

	fill := DimFillOpacity(d, cfg.Clustering, cfg.Shape)
	return Attributes{
		IconColor:          colors.DefaultIcon,
		ShapeColor:         colors.DefaultShapeFill,
		ShapeStrokeColor:   colors.DefaultShapeStroke,
		IconOpacity:        cfg.Symbols.DefaultIconOpacity,
		ShapeFillOpacity:   fill,
		ShapeStrokeOpacity: fill * StrokeFillRatio(cfg.Shape),
	}, ShadePale
}
