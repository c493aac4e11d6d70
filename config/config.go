// Package config holds the tunable parameters of a wallpaper generation
// and loads them from YAML layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every parameter read by a generation pass.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Grid       GridConfig       `yaml:"grid"`
	Symbols    SymbolsConfig    `yaml:"symbols"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Colors     ColorsConfig     `yaml:"colors"`
	Shape      ShapeConfig      `yaml:"shape"`
	Font       FontConfig       `yaml:"font"`
}

// CanvasConfig is the logical size of the output in pixels.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GridConfig controls the staggered lattice.
type GridConfig struct {
	SpacingX          float64 `yaml:"spacing_x"`
	SpacingY          float64 `yaml:"spacing_y"`
	SeamlessRendering bool    `yaml:"seamless_rendering"` // overscan so the image tiles
}

// SymbolsConfig describes the glyph alphabet and how often pale glyphs appear.
type SymbolsConfig struct {
	List               []string `yaml:"list"`
	FontSize           float64  `yaml:"font_size"`
	AdjacentPenalty    float64  `yaml:"adjacent_penalty"` // chance to reject a glyph equal to a neighbor
	DefaultIconOpacity float64  `yaml:"default_icon_opacity"`
	Density            float64  `yaml:"density"` // chance a pale cell is drawn at all
}

// ClusteringConfig describes the colored hotspots.
type ClusteringConfig struct {
	Count          int     `yaml:"count"`
	MaxRadius      float64 `yaml:"max_radius"`
	ColoredOpacity float64 `yaml:"colored_opacity"`
	DimmingFactor  float64 `yaml:"dimming_factor"`
	MinDimOpacity  float64 `yaml:"min_dim_opacity"`
}

// ColorsConfig holds color specs as written by the user. See ParseColor.
type ColorsConfig struct {
	Background              string   `yaml:"background"`
	DefaultIconColor        string   `yaml:"default_icon_color"`
	ColoredIconColor        string   `yaml:"colored_icon_color"`
	DefaultShapeFillColor   string   `yaml:"default_shape_fill_color"`
	DefaultShapeStrokeColor string   `yaml:"default_shape_stroke_color"`
	Palette                 []string `yaml:"palette"`
}

// ShapeConfig describes the outline drawn behind each glyph. Corners of 0
// or 1 disables the shape, 2 draws a circle and 3 or more a regular polygon.
type ShapeConfig struct {
	Corners       int     `yaml:"corners"`
	Radius        float64 `yaml:"radius"`
	FillOpacity   float64 `yaml:"fill_opacity"`
	StrokeWidth   float64 `yaml:"stroke_width"`
	StrokeOpacity float64 `yaml:"stroke_opacity"`
}

// FontConfig selects TrueType files for glyphs. Empty paths select the
// embedded Go Regular face.
type FontConfig struct {
	Path     string `yaml:"path"`
	Fallback string `yaml:"fallback"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// DefaultsYAML returns the raw embedded defaults.
func DefaultsYAML() []byte {
	return append([]byte(nil), defaultsYAML...)
}

// Load reads the config file at path over the embedded defaults. Keys
// missing from the file keep their default values. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy, so the caller can keep editing c while a
// generation pass holds the copy.
func (c Config) Clone() Config {
	out := c
	out.Symbols.List = append([]string(nil), c.Symbols.List...)
	out.Colors.Palette = append([]string(nil), c.Colors.Palette...)
	return out
}

// Overscan returns the border added on each side of the canvas when
// seamless rendering is on, and zero otherwise.
func (c Config) Overscan() (x, y float64) {
	if !c.Grid.SeamlessRendering {
		return 0, 0
	}
	return c.Grid.SpacingX + c.Shape.Radius, c.Grid.SpacingY + c.Shape.Radius
}

// SpacingValid reports whether the grid spacing can produce a lattice.
// Invalid spacing is not a Validate error: generation proceeds with an
// empty grid.
func (c Config) SpacingValid() bool {
	return c.Grid.SpacingX > 0 && c.Grid.SpacingY > 0
}

// Validate returns every hard violation in c joined into one error, or nil.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	unit := func(v float64) bool { return v >= 0 && v <= 1 }

	check(c.Canvas.Width > 0 && c.Canvas.Height > 0,
		"canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)

	check(len(c.Symbols.List) > 0, "symbols.list must not be empty")
	check(c.Symbols.FontSize > 0, "symbols.font_size must be positive, got %g", c.Symbols.FontSize)
	check(unit(c.Symbols.AdjacentPenalty), "symbols.adjacent_penalty must be in [0,1], got %g", c.Symbols.AdjacentPenalty)
	check(unit(c.Symbols.DefaultIconOpacity), "symbols.default_icon_opacity must be in [0,1], got %g", c.Symbols.DefaultIconOpacity)
	check(unit(c.Symbols.Density), "symbols.density must be in [0,1], got %g", c.Symbols.Density)

	check(c.Clustering.Count >= 0, "clustering.count must not be negative, got %d", c.Clustering.Count)
	check(c.Clustering.MaxRadius > 0, "clustering.max_radius must be positive, got %g", c.Clustering.MaxRadius)
	check(unit(c.Clustering.ColoredOpacity), "clustering.colored_opacity must be in [0,1], got %g", c.Clustering.ColoredOpacity)
	check(c.Clustering.DimmingFactor > 0, "clustering.dimming_factor must be positive, got %g", c.Clustering.DimmingFactor)
	check(unit(c.Clustering.MinDimOpacity), "clustering.min_dim_opacity must be in [0,1], got %g", c.Clustering.MinDimOpacity)

	check(c.Clustering.Count == 0 || len(c.Colors.Palette) > 0,
		"colors.palette must not be empty when clustering.count is %d", c.Clustering.Count)
	if _, err := c.Colors.Parse(); err != nil {
		errs = append(errs, err)
	}

	check(c.Shape.Corners >= 0, "shape.corners must not be negative, got %d", c.Shape.Corners)
	check(c.Shape.Radius >= 0, "shape.radius must not be negative, got %g", c.Shape.Radius)
	check(unit(c.Shape.FillOpacity), "shape.fill_opacity must be in [0,1], got %g", c.Shape.FillOpacity)
	check(c.Shape.StrokeWidth >= 0, "shape.stroke_width must not be negative, got %g", c.Shape.StrokeWidth)
	check(unit(c.Shape.StrokeOpacity), "shape.stroke_opacity must be in [0,1], got %g", c.Shape.StrokeOpacity)

	return errors.Join(errs...)
}
