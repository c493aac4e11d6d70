package iconwall

import (
	"fmt"
	"path/filepath"

	"github.com/wbrown/iconwall/imageutil"
)

// AppName prefixes exported file names.
const AppName = "iconwall"

// ExportFilename returns "<app>_<width>x<height>.png".
func ExportFilename(app string, width, height int) string {
	return fmt.Sprintf("%s_%dx%d.png", app, width, height)
}

// ExportPNG renders the current grid at width x height pixels and writes
// it to dir under ExportFilename. It returns the written path.
func (g *Generator) ExportPNG(dir string, width, height int) (string, error) {
	img, err := g.RenderToSurface(width, height)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFilename(AppName, width, height))
	if err := imageutil.SavePNG(img, path); err != nil {
		return "", fmt.Errorf("exporting %dx%d: %w", width, height, err)
	}
	g.log.Info().Str("path", path).Int("width", width).Int("height", height).Msg("exported wallpaper")
	return path, nil
}
