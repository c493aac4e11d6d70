package iconwall

import (
	"math"

	"github.com/wbrown/iconwall/config"
)

// CellKind tags a grid slot as empty or holding a symbol.
type CellKind uint8

const (
	CellAbsent CellKind = iota
	CellSymbol
)

// Cell is one grid slot. Only cells of kind CellSymbol carry a glyph and
// attributes; the zero Cell is absent.
type Cell struct {
	Kind    CellKind
	Char    string
	X, Y    float64 // logical canvas coordinates of the cell center
	Colored bool
	Attributes
}

// IsSymbol reports whether the cell is drawn.
func (c Cell) IsSymbol() bool {
	return c.Kind == CellSymbol
}

// Shade returns how the cell was resolved.
func (c Cell) Shade() Shade {
	switch {
	case c.Kind != CellSymbol:
		return ShadeAbsent
	case c.Colored:
		return ShadeColored
	default:
		return ShadePale
	}
}

// Grid is a fixed Rows x Cols row-major container of cells. Row indices
// grow downward, column indices rightward.
type Grid struct {
	Rows, Cols int
	cells      []Cell
}

// NewGrid returns a grid with every cell absent.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return &Grid{Rows: rows, Cols: cols, cells: make([]Cell, rows*cols)}
}

// At returns the cell at (row, col), or an absent cell when out of range.
func (g *Grid) At(row, col int) Cell {
	if g == nil || row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{}
	}
	return g.cells[row*g.Cols+col]
}

// Set stores c at (row, col). Out of range writes are ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	g.cells[row*g.Cols+col] = c
}

// Char returns the glyph at (row, col), or "" when the slot is absent or
// out of range.
func (g *Grid) Char(row, col int) string {
	return g.At(row, col).Char
}

// Each calls fn for every slot in row-major order.
func (g *Grid) Each(fn func(row, col int, c Cell)) {
	if g == nil {
		return
	}
	for i, c := range g.cells {
		fn(i/g.Cols, i%g.Cols, c)
	}
}

// Stats counts cells by shade.
type Stats struct {
	Rows, Cols int
	Colored    int
	Pale       int
	Absent     int
}

// Stats returns the shade counts of g.
func (g *Grid) Stats() Stats {
	if g == nil {
		return Stats{}
	}
	s := Stats{Rows: g.Rows, Cols: g.Cols}
	for _, c := range g.cells {
		switch c.Shade() {
		case ShadeColored:
			s.Colored++
		case ShadePale:
			s.Pale++
		default:
			s.Absent++
		}
	}
	return s
}

// MaxGridCells bounds the lattice. Spacing dense enough to exceed it
// yields an empty grid.
const MaxGridCells = 1 << 22

// latticeCount is the number of points start+step/2, start+3*step/2, ...
// that fall before start+span. It stays a float so oversized lattices can
// be rejected before any conversion.
func latticeCount(span, step float64) float64 {
	n := math.Ceil((span - step/2) / step)
	if !(n > 0) { // also catches NaN from an infinite step
		return 0
	}
	return n
}

// latticeSize returns the unbounded row and column counts for cfg.
func latticeSize(cfg *config.Config) (rows, cols float64) {
	if !cfg.SpacingValid() {
		return 0, 0
	}
	ox, oy := cfg.Overscan()
	rows = latticeCount(float64(cfg.Canvas.Height)+2*oy, cfg.Grid.SpacingY)
	cols = latticeCount(float64(cfg.Canvas.Width)+2*ox, cfg.Grid.SpacingX)
	return rows, cols
}

// LatticeTooDense reports whether cfg asks for more than MaxGridCells.
func LatticeTooDense(cfg *config.Config) bool {
	rows, cols := latticeSize(cfg)
	return rows*cols > MaxGridCells
}

// GridDimensions returns the lattice size for cfg. It depends only on the
// canvas size, spacing, seamless flag and shape radius. Invalid or too
// dense spacing gives 0, 0.
func GridDimensions(cfg *config.Config) (rows, cols int) {
	if LatticeTooDense(cfg) {
		return 0, 0
	}
	r, c := latticeSize(cfg)
	return int(r), int(c)
}

// LatticePoint returns the canvas position of (row, col). Odd rows are
// shifted right by half a column.
func LatticePoint(cfg *config.Config, row, col int) (x, y float64) {
	ox, oy := cfg.Overscan()
	sx, sy := cfg.Grid.SpacingX, cfg.Grid.SpacingY
	x = -ox + sx/2 + float64(col)*sx
	if row%2 == 1 {
		x += sx / 2
	}
	y = -oy + sy/2 + float64(row)*sy
	return x, y
}

// Populate fills a grid for cfg. Each lattice point is resolved against
// clusters; surviving points get a glyph chosen against their left and top
// neighbors. Invalid spacing yields an empty grid.
func Populate(rng Rand, cfg *config.Config, colors *config.Colors, clusters *ClusterSet) *Grid {
	rows, cols := GridDimensions(cfg)
	grid := NewGrid(rows, cols)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := LatticePoint(cfg, row, col)
			attrs, shade := Resolve(rng, x, y, clusters, cfg, colors)
			if shade == ShadeAbsent {
				continue
			}

			char := SelectSymbol(rng,
				grid.Char(row, col-1),
				grid.Char(row-1, col),
				cfg.Symbols.List,
				cfg.Symbols.AdjacentPenalty)

			grid.Set(row, col, Cell{
				Kind:       CellSymbol,
				Char:       char,
				X:          x,
				Y:          y,
				Colored:    shade == ShadeColored,
				Attributes: attrs,
			})
		}
	}
	return grid
}
