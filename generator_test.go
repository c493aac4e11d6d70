package iconwall

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wbrown/iconwall/config"
	"github.com/wbrown/iconwall/imageutil"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Canvas = config.CanvasConfig{Width: 160, Height: 90}
	cfg.Grid.SpacingX, cfg.Grid.SpacingY = 32, 28
	cfg.Shape.Radius = 10
	cfg.Clustering.MaxRadius = 60
	cfg.Clustering.Count = 2
	return cfg
}

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithSeed(1), WithLogger(zerolog.Nop())}, opts...)
	g, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestZeroGeneratorNotReady(t *testing.T) {
	var g Generator
	if g.Ready() {
		t.Error("Expected zero generator not to be ready")
	}
	if err := g.Regenerate(smallConfig()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady from Regenerate, got %v", err)
	}
	if err := g.Render(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady from Render, got %v", err)
	}
	if _, err := g.RenderToSurface(10, 10); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady from RenderToSurface, got %v", err)
	}
}

func TestNewInvalidPixelRatio(t *testing.T) {
	_, err := New(WithDevicePixelRatio(0))
	if !errors.Is(err, ErrInvalidPixelRatio) {
		t.Errorf("Expected ErrInvalidPixelRatio, got %v", err)
	}
}

func TestNewMissingFont(t *testing.T) {
	if _, err := New(WithFont("nonexistent.ttf", "")); err == nil {
		t.Error("Expected error for a missing font")
	}
}

func TestRegenerateBuildsState(t *testing.T) {
	g := newTestGenerator(t, WithDevicePixelRatio(2))
	if !g.Ready() {
		t.Fatal("Expected generator to be ready")
	}
	if g.Surface() != nil || g.Grid() != nil {
		t.Error("Expected no surface or grid before the first Regenerate")
	}

	cfg := smallConfig()
	if err := g.Regenerate(cfg); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	s := g.Surface()
	if s.Width() != 320 || s.Height() != 180 {
		t.Errorf("Expected 320x180 pixels at dpr 2, got %dx%d", s.Width(), s.Height())
	}
	if len(g.Clusters()) != 2 {
		t.Errorf("Expected 2 clusters, got %d", len(g.Clusters()))
	}
	rows, cols := GridDimensions(&cfg)
	if g.Grid().Rows != rows || g.Grid().Cols != cols {
		t.Errorf("Expected %dx%d grid, got %dx%d", rows, cols, g.Grid().Rows, g.Grid().Cols)
	}
	stats := g.Stats()
	if stats.Colored+stats.Pale+stats.Absent != rows*cols {
		t.Errorf("Expected stats to cover %d cells, got %+v", rows*cols, stats)
	}
	if g.DevicePixelRatio() != 2 {
		t.Errorf("Expected dpr 2, got %v", g.DevicePixelRatio())
	}
}

func TestRegenerateCopiesConfig(t *testing.T) {
	g := newTestGenerator(t)
	cfg := smallConfig()
	if err := g.Regenerate(cfg); err != nil {
		t.Fatal(err)
	}
	cfg.Symbols.List[0] = "changed"
	if g.Config().Symbols.List[0] == "changed" {
		t.Error("Expected the generator to hold its own copy of the config")
	}
}

func TestRegenerateResizesSurface(t *testing.T) {
	g := newTestGenerator(t)
	cfg := smallConfig()
	if err := g.Regenerate(cfg); err != nil {
		t.Fatal(err)
	}
	first := g.Surface()

	if err := g.Regenerate(cfg); err != nil {
		t.Fatal(err)
	}
	if g.Surface() != first {
		t.Error("Expected the surface to be reused for the same canvas")
	}

	cfg.Canvas = config.CanvasConfig{Width: 200, Height: 100}
	if err := g.Regenerate(cfg); err != nil {
		t.Fatal(err)
	}
	if s := g.Surface(); s.Width() != 200 || s.Height() != 100 {
		t.Errorf("Expected 200x100 after resize, got %dx%d", s.Width(), s.Height())
	}
}

func TestRegenerateKeepsStateOnError(t *testing.T) {
	g := newTestGenerator(t)
	if err := g.Regenerate(smallConfig()); err != nil {
		t.Fatal(err)
	}
	grid := g.Grid()

	bad := smallConfig()
	bad.Colors.Background = "not-a-color"
	if err := g.Regenerate(bad); err == nil {
		t.Error("Expected error for a bad color")
	}

	empty := smallConfig()
	empty.Colors.Palette = nil
	if err := g.Regenerate(empty); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("Expected ErrEmptyPalette, got %v", err)
	}

	missing := smallConfig()
	missing.Font.Path = "nonexistent.ttf"
	if err := g.Regenerate(missing); err == nil {
		t.Error("Expected error for a missing font")
	} else if !strings.Contains(err.Error(), "loading config fonts") {
		t.Errorf("Expected the font error to carry context, got %v", err)
	}

	if g.Grid() != grid {
		t.Error("Expected the previous grid to be kept after failures")
	}
}

func TestRegenerateInvalidSpacingWarns(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(t, WithLogger(zerolog.New(&buf)))

	cfg := smallConfig()
	cfg.Grid.SpacingX = 0
	if err := g.Regenerate(cfg); err != nil {
		t.Fatalf("Expected invalid spacing to be tolerated, got %v", err)
	}
	if g.Grid().Rows != 0 || g.Grid().Cols != 0 {
		t.Errorf("Expected an empty grid, got %dx%d", g.Grid().Rows, g.Grid().Cols)
	}
	if !strings.Contains(buf.String(), "grid spacing must be positive") {
		t.Errorf("Expected a spacing warning, got %q", buf.String())
	}
}

func TestRegenerateDenseSpacingWarns(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(t, WithLogger(zerolog.New(&buf)))

	cfg := smallConfig()
	cfg.Grid.SpacingX, cfg.Grid.SpacingY = 1e-9, 1e-9
	if err := g.Regenerate(cfg); err != nil {
		t.Fatalf("Expected dense spacing to be tolerated, got %v", err)
	}
	if g.Grid().Rows != 0 || g.Grid().Cols != 0 {
		t.Errorf("Expected an empty grid, got %dx%d", g.Grid().Rows, g.Grid().Cols)
	}
	if !strings.Contains(buf.String(), "grid spacing too dense") {
		t.Errorf("Expected a density warning, got %q", buf.String())
	}
}

func TestSeededGeneratorsMatch(t *testing.T) {
	a := newTestGenerator(t, WithSeed(77))
	b := newTestGenerator(t, WithSeed(77))
	if err := a.Regenerate(smallConfig()); err != nil {
		t.Fatal(err)
	}
	if err := b.Regenerate(smallConfig()); err != nil {
		t.Fatal(err)
	}
	if !a.Surface().Equal(b.Surface().RGBAImage) {
		t.Error("Expected the same seed to produce the same image")
	}
}

func TestRenderToSurface(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.RenderToSurface(320, 180); err == nil {
		t.Error("Expected error before the first Regenerate")
	}
	if err := g.Regenerate(smallConfig()); err != nil {
		t.Fatal(err)
	}
	primary := g.Surface().Clone()

	img, err := g.RenderToSurface(320, 180)
	if err != nil {
		t.Fatalf("RenderToSurface failed: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Errorf("Expected 320x180, got %v", img.Bounds())
	}
	if !g.Surface().Equal(primary) {
		t.Error("Expected the primary surface to be untouched")
	}

	// Same size as the primary surface reproduces it.
	same, err := g.RenderToSurface(160, 90)
	if err != nil {
		t.Fatal(err)
	}
	if !imageutil.RGBAImageFromImage(same).Equal(primary) {
		t.Error("Expected a 1:1 render to match the primary surface")
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename("iconwall", 1920, 1080); got != "iconwall_1920x1080.png" {
		t.Errorf("Expected iconwall_1920x1080.png, got %q", got)
	}
}

func TestExportPNG(t *testing.T) {
	g := newTestGenerator(t)
	if err := g.Regenerate(smallConfig()); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := g.ExportPNG(dir, 320, 180)
	if err != nil {
		t.Fatalf("ExportPNG failed: %v", err)
	}
	if filepath.Base(path) != "iconwall_320x180.png" {
		t.Errorf("Expected iconwall_320x180.png, got %s", filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Output file is empty")
	}
	loaded, err := imageutil.LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Width() != 320 || loaded.Height() != 180 {
		t.Errorf("Expected 320x180 export, got %dx%d", loaded.Width(), loaded.Height())
	}
}
