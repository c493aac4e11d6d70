package iconwall

import (
	"errors"
	"image/color"
	"math/rand/v2"
)

// ErrEmptyPalette is returned when clusters are requested but there is no
// color to give them.
var ErrEmptyPalette = errors.New("iconwall: cluster palette is empty")

// Rand is the source of randomness for a generation pass. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewSeededRand returns a PCG-backed Rand that replays the same stream for
// the same seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ClusterCenter is a colored hotspot. Cells near it are likely to be
// drawn in its color.
type ClusterCenter struct {
	X, Y  float64
	Color color.NRGBA
}

// PlaceClusters scatters count centers uniformly over a width x height
// canvas. Each center gets a palette color drawn with replacement. A count
// of zero or less yields no centers.
func PlaceClusters(rng Rand, count int, width, height float64, palette []color.NRGBA) ([]ClusterCenter, error) {
	if count <= 0 {
		return []ClusterCenter{}, nil
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}

	centers := make([]ClusterCenter, count)
	for i := range centers {
		centers[i] = ClusterCenter{
			X:     rng.Float64() * width,
			Y:     rng.Float64() * height,
			Color: palette[rng.IntN(len(palette))],
		}
	}
	return centers, nil
}
