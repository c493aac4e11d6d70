package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Colors is ColorsConfig with every spec parsed.
type Colors struct {
	Background         color.NRGBA
	DefaultIcon        color.NRGBA
	ColoredIcon        color.NRGBA
	DefaultShapeFill   color.NRGBA
	DefaultShapeStroke color.NRGBA
	Palette            []color.NRGBA
}

// ParseColor parses a color spec: "#rgb", "#rrggbb", "#rrggbbaa", an SVG
// color name such as "steelblue", or "transparent".
func ParseColor(spec string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when c is not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Parse parses every color spec in cc.
func (cc ColorsConfig) Parse() (Colors, error) {
	var out Colors
	fields := []struct {
		name string
		spec string
		dst  *color.NRGBA
	}{
		{"colors.background", cc.Background, &out.Background},
		{"colors.default_icon_color", cc.DefaultIconColor, &out.DefaultIcon},
		{"colors.colored_icon_color", cc.ColoredIconColor, &out.ColoredIcon},
		{"colors.default_shape_fill_color", cc.DefaultShapeFillColor, &out.DefaultShapeFill},
		{"colors.default_shape_stroke_color", cc.DefaultShapeStrokeColor, &out.DefaultShapeStroke},
	}
	for _, f := range fields {
		c, err := ParseColor(f.spec)
		if err != nil {
			return Colors{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = c
	}

	out.Palette = make([]color.NRGBA, 0, len(cc.Palette))
	for i, spec := range cc.Palette {
		c, err := ParseColor(spec)
		if err != nil {
			return Colors{}, fmt.Errorf("colors.palette[%d]: %w", i, err)
		}
		out.Palette = append(out.Palette, c)
	}
	return out, nil
}
