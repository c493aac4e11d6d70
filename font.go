package iconwall

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// glyphPad keeps antialiased edges inside a glyph mask.
const glyphPad = 2

// maxCachedGlyphs bounds the mask cache. A full cache is emptied before the
// next glyph is stored, since a new export scale replaces every entry.
const maxCachedGlyphs = 256

// FontAtlas renders glyph strings to alpha masks and caches them by pixel
// size. Glyphs the primary font lacks are taken from the fallback font.
type FontAtlas struct {
	primary  *truetype.Font
	fallback *truetype.Font
	name     string
	fallName string
	masks    map[glyphKey]*glyphMask
}

type glyphKey struct {
	glyph string
	size  float64
}

// glyphMask is a rendered glyph. Offset moves the mask origin from the
// glyph's visual center.
type glyphMask struct {
	mask       *image.Alpha
	offX, offY float64
	advance    float64
}

// LoadFontAtlas loads TrueType fonts for glyph rendering. An empty
// primaryPath selects the embedded Go Regular face. The fallback is
// optional; when it is empty and a custom primary font is given, Go
// Regular serves as fallback.
func LoadFontAtlas(primaryPath, fallbackPath string) (*FontAtlas, error) {
	fa := &FontAtlas{
		masks:    make(map[glyphKey]*glyphMask),
		name:     primaryPath,
		fallName: fallbackPath,
	}

	var err error
	if primaryPath == "" {
		fa.name = "goregular"
		fa.primary, err = freetype.ParseFont(goregular.TTF)
	} else {
		fa.primary, err = loadFont(primaryPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading font %q: %w", fa.name, err)
	}

	switch {
	case fallbackPath != "":
		fa.fallback, err = loadFont(fallbackPath)
		if err != nil {
			return nil, fmt.Errorf("loading fallback font %q: %w", fallbackPath, err)
		}
	case primaryPath != "":
		fa.fallName = "goregular"
		fa.fallback, err = freetype.ParseFont(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("loading fallback font: %w", err)
		}
	}

	return fa, nil
}

// loadFont loads a TrueType font from file.
func loadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return freetype.ParseFont(fontBytes)
}

// Name returns the primary font name.
func (fa *FontAtlas) Name() string {
	return fa.name
}

// Matches reports whether the atlas was loaded from the given paths.
func (fa *FontAtlas) Matches(primaryPath, fallbackPath string) bool {
	wantPrimary := primaryPath
	if wantPrimary == "" {
		wantPrimary = "goregular"
	}
	wantFallback := fallbackPath
	if wantFallback == "" && primaryPath != "" {
		wantFallback = "goregular"
	}
	return fa.name == wantPrimary && fa.fallName == wantFallback
}

// HasGlyph reports whether every rune of s is in the primary or the
// fallback font.
func (fa *FontAtlas) HasGlyph(s string) bool {
	return covers(fa.primary, s) || covers(fa.fallback, s)
}

func covers(f *truetype.Font, s string) bool {
	if f == nil {
		return false
	}
	for _, r := range s {
		if f.Index(r) == 0 {
			return false
		}
	}
	return true
}

// fontFor picks the font that draws s completely, preferring the primary.
func (fa *FontAtlas) fontFor(s string) *truetype.Font {
	if !covers(fa.primary, s) && covers(fa.fallback, s) {
		return fa.fallback
	}
	return fa.primary
}

// glyph returns the mask for s at size pixels, rendering it on first use.
func (fa *FontAtlas) glyph(s string, size float64) *glyphMask {
	key := glyphKey{glyph: s, size: size}
	if m, ok := fa.masks[key]; ok {
		return m
	}
	m := renderGlyphMask(fa.fontFor(s), s, size)
	if len(fa.masks) >= maxCachedGlyphs {
		clear(fa.masks)
	}
	fa.masks[key] = m
	return m
}

// renderGlyphMask draws s with the baseline placed so that the mask's
// visual center is the middle of the ascent+descent band, matching
// center/middle text alignment.
func renderGlyphMask(ttfFont *truetype.Font, s string, size float64) *glyphMask {
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	advance := font.MeasureString(face, s)

	w := advance.Ceil() + 2*glyphPad
	h := ascent + descent + 2*glyphPad
	img := image.NewAlpha(image.Rect(0, 0, w, h))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Opaque)
	ctx.SetHinting(font.HintingNone)

	// A glyph missing from both fonts draws as the font's notdef glyph.
	_, _ = ctx.DrawString(s, freetype.Pt(glyphPad, glyphPad+ascent))

	adv := float64(advance) / 64
	return &glyphMask{
		mask:    img,
		offX:    -adv/2 - glyphPad,
		offY:    -float64(ascent+descent)/2 - glyphPad,
		advance: adv,
	}
}
