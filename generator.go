package iconwall

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wbrown/iconwall/config"
)

// ErrNotReady is returned when a generator is used before its font atlas
// is loaded.
var ErrNotReady = errors.New("iconwall: generator is not ready")

// Generator owns one wallpaper: the cluster set, the populated grid and
// the primary surface. Every Regenerate replaces all three. A Generator
// is not safe for concurrent use.
type Generator struct {
	log zerolog.Logger
	rng Rand
	dpr float64

	fontPath     string
	fallbackPath string
	atlas        *FontAtlas
	renderer     *Renderer

	cfg      config.Config
	colors   config.Colors
	clusters *ClusterSet
	grid     *Grid
	surface  *Surface
	stats    Stats
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for warnings and generation stats.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithRand sets the random source.
func WithRand(rng Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSeed makes generation reproducible for the given seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = NewSeededRand(seed)
	}
}

// WithDevicePixelRatio sets the pixel density of the primary surface.
func WithDevicePixelRatio(dpr float64) Option {
	return func(g *Generator) {
		g.dpr = dpr
	}
}

// WithFont selects TrueType files for glyphs. Empty paths select the
// embedded Go Regular face.
func WithFont(path, fallback string) Option {
	return func(g *Generator) {
		g.fontPath = path
		g.fallbackPath = fallback
	}
}

// New creates a Generator and loads its fonts. The generator is ready once
// New returns without error. Defaults: device pixel ratio 1, a randomly
// seeded source, the global zerolog logger, the embedded font.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		log: log.Logger,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		dpr: 1,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.dpr <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPixelRatio, g.dpr)
	}
	atlas, err := LoadFontAtlas(g.fontPath, g.fallbackPath)
	if err != nil {
		return nil, err
	}
	g.atlas = atlas
	g.renderer = NewRenderer(atlas)
	return g, nil
}

// Ready reports whether the font atlas is loaded.
func (g *Generator) Ready() bool {
	return g != nil && g.atlas != nil && g.renderer != nil
}

// Regenerate copies cfg, places new clusters, repopulates the grid and
// redraws the primary surface. A canvas size change reallocates the
// surface first. On error the previous state is kept.
func (g *Generator) Regenerate(cfg config.Config) error {
	if !g.Ready() {
		return ErrNotReady
	}
	start := time.Now()
	cfg = cfg.Clone()

	colors, err := cfg.Colors.Parse()
	if err != nil {
		return fmt.Errorf("parsing colors: %w", err)
	}

	surface := g.surface
	if surface == nil || surface.LogicalWidth != cfg.Canvas.Width || surface.LogicalHeight != cfg.Canvas.Height {
		surface, err = NewSurface(cfg.Canvas.Width, cfg.Canvas.Height, g.dpr)
		if err != nil {
			return fmt.Errorf("resizing surface: %w", err)
		}
	}

	// Fonts named in the config replace the ones given to New.
	atlas := g.atlas
	if (cfg.Font.Path != "" || cfg.Font.Fallback != "") && !atlas.Matches(cfg.Font.Path, cfg.Font.Fallback) {
		atlas, err = LoadFontAtlas(cfg.Font.Path, cfg.Font.Fallback)
		if err != nil {
			return fmt.Errorf("loading config fonts: %w", err)
		}
	}

	centers, err := PlaceClusters(g.rng, cfg.Clustering.Count,
		float64(cfg.Canvas.Width), float64(cfg.Canvas.Height), colors.Palette)
	if err != nil {
		return fmt.Errorf("placing clusters: %w", err)
	}
	clusters := NewClusterSet(centers)

	if !cfg.SpacingValid() {
		g.log.Warn().
			Float64("spacing_x", cfg.Grid.SpacingX).
			Float64("spacing_y", cfg.Grid.SpacingY).
			Msg("grid spacing must be positive, rendering an empty grid")
	} else if LatticeTooDense(&cfg) {
		g.log.Warn().
			Float64("spacing_x", cfg.Grid.SpacingX).
			Float64("spacing_y", cfg.Grid.SpacingY).
			Int("max_cells", MaxGridCells).
			Msg("grid spacing too dense, rendering an empty grid")
	}
	grid := Populate(g.rng, &cfg, &colors, clusters)

	if atlas != g.atlas {
		g.atlas = atlas
		g.renderer = NewRenderer(atlas)
		g.fontPath, g.fallbackPath = cfg.Font.Path, cfg.Font.Fallback
	}
	g.cfg = cfg
	g.colors = colors
	g.clusters = clusters
	g.grid = grid
	g.surface = surface
	g.stats = grid.Stats()

	g.renderer.Render(g.surface, g.grid, g.cfg.Shape, g.cfg.Symbols.FontSize, g.colors.Background)

	g.log.Debug().
		Int("rows", g.stats.Rows).
		Int("cols", g.stats.Cols).
		Int("clusters", clusters.Len()).
		Int("colored", g.stats.Colored).
		Int("pale", g.stats.Pale).
		Int("absent", g.stats.Absent).
		Dur("elapsed", time.Since(start)).
		Msg("regenerated wallpaper")
	return nil
}

// Render redraws the current grid onto the primary surface.
func (g *Generator) Render() error {
	if !g.Ready() {
		return ErrNotReady
	}
	if g.surface == nil {
		return nil
	}
	g.renderer.Render(g.surface, g.grid, g.cfg.Shape, g.cfg.Symbols.FontSize, g.colors.Background)
	return nil
}

// RenderToSurface renders the current grid onto a new width x height
// pixel image, scaling the logical canvas to fit. The primary surface is
// untouched.
func (g *Generator) RenderToSurface(width, height int) (*image.RGBA, error) {
	if !g.Ready() {
		return nil, ErrNotReady
	}
	if g.grid == nil {
		return nil, errors.New("iconwall: nothing generated yet")
	}
	s, err := NewScaledSurface(g.cfg.Canvas.Width, g.cfg.Canvas.Height, width, height)
	if err != nil {
		return nil, err
	}
	g.renderer.Render(s, g.grid, g.cfg.Shape, g.cfg.Symbols.FontSize, g.colors.Background)
	return s.Image(), nil
}

// Surface returns the primary surface, or nil before the first Regenerate.
func (g *Generator) Surface() *Surface {
	return g.surface
}

// Grid returns the current grid.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Clusters returns the current cluster centers.
func (g *Generator) Clusters() []ClusterCenter {
	return g.clusters.Centers()
}

// Config returns a copy of the configuration of the last generation.
func (g *Generator) Config() config.Config {
	return g.cfg.Clone()
}

// Stats returns the shade counts of the last generation.
func (g *Generator) Stats() Stats {
	return g.stats
}

// DevicePixelRatio returns the pixel density of the primary surface.
func (g *Generator) DevicePixelRatio() float64 {
	return g.dpr
}
