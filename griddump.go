package iconwall

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/wbrown/iconwall/config"
)

// CellRecord is one grid slot flattened for CSV output.
type CellRecord struct {
	Row                int     `csv:"row"`
	Col                int     `csv:"col"`
	Shade              string  `csv:"shade"`
	Char               string  `csv:"char"`
	X                  float64 `csv:"x"`
	Y                  float64 `csv:"y"`
	IconColor          string  `csv:"icon_color"`
	ShapeColor         string  `csv:"shape_color"`
	ShapeStrokeColor   string  `csv:"shape_stroke_color"`
	IconOpacity        float64 `csv:"icon_opacity"`
	ShapeFillOpacity   float64 `csv:"shape_fill_opacity"`
	ShapeStrokeOpacity float64 `csv:"shape_stroke_opacity"`
}

// Records flattens g in row-major order. Absent slots are included with
// only their position and shade set.
func (g *Grid) Records() []CellRecord {
	if g == nil {
		return nil
	}
	records := make([]CellRecord, 0, g.Rows*g.Cols)
	g.Each(func(row, col int, c Cell) {
		rec := CellRecord{Row: row, Col: col, Shade: c.Shade().String()}
		if c.IsSymbol() {
			rec.Char = c.Char
			rec.X, rec.Y = c.X, c.Y
			rec.IconColor = config.FormatColor(c.IconColor)
			rec.ShapeColor = config.FormatColor(c.ShapeColor)
			rec.ShapeStrokeColor = config.FormatColor(c.ShapeStrokeColor)
			rec.IconOpacity = c.IconOpacity
			rec.ShapeFillOpacity = c.ShapeFillOpacity
			rec.ShapeStrokeOpacity = c.ShapeStrokeOpacity
		}
		records = append(records, rec)
	})
	return records
}

// WriteGridCSV writes g to w as CSV with a header row.
func WriteGridCSV(w io.Writer, g *Grid) error {
	records := g.Records()
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("writing grid csv: %w", err)
	}
	return nil
}
