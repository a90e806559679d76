package maze

import (
	"fmt"
	"iter"
	"strings"
)

type GridConfig struct {
	Cols, Rows int
	// Top-left corner of the maze on the renderer's canvas.
	X, Y float64
	// Per-axis size of a cell on the renderer's canvas.
	CellWidth, CellHeight float64
	Renderer              Renderer
}

// Grid owns the cells of a maze, indexed [col][row].
type Grid struct {
	cols, rows int
	x, y       float64
	cellWidth  float64
	cellHeight float64
	cells      [][]Cell
	renderer   Renderer
}

// NewGrid allocates a fully walled grid and renders every cell once.
func NewGrid(cfg GridConfig) (*Grid, error) {
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("%w (cols = %d, rows = %d)",
			ErrInvalidDimensions, cfg.Cols, cfg.Rows)
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NopRenderer{}
	}

	cells := make([][]Cell, cfg.Cols)
	for col := range cells {
		cells[col] = make([]Cell, cfg.Rows)
		for row := range cells[col] {
			cells[col][row] = newCell(col, row)
		}
	}

	g := &Grid{
		cols: cfg.Cols, rows: cfg.Rows,
		x: cfg.X, y: cfg.Y,
		cellWidth: cfg.CellWidth, cellHeight: cfg.CellHeight,
		cells:    cells,
		renderer: renderer,
	}
	for col := range g.cols {
		for row := range g.rows {
			g.render(Position{col, row})
		}
	}
	return g, nil
}

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) InBounds(col, row int) bool {
	return 0 <= col && col < g.cols && 0 <= row && row < g.rows
}

// panics [AssertionError]
func (g *Grid) CellAt(col, row int) *Cell {
	if !g.InBounds(col, row) {
		panic(AssertionError{fmt.Sprintf(
			"cell %d:%d out of %dx%d grid", col, row, g.cols, g.rows,
		)})
	}
	return &g.cells[col][row]
}

// Cells yields every cell in column-major order.
func (g *Grid) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for col := range g.cols {
			for row := range g.rows {
				if !yield(&g.cells[col][row]) {
					return
				}
			}
		}
	}
}

// left, right, up, down
var offsets = [...]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the in-bounds positions adjacent to pos, in the order
// left, right, up, down.
func (g *Grid) Neighbors(pos Position) []Position {
	result := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		col, row := pos.Col+d.Col, pos.Row+d.Row
		if g.InBounds(col, row) {
			result = append(result, Position{col, row})
		}
	}
	return result
}

// breakWall clears the wall shared by two adjacent cells on both sides.
//
// panics [AssertionError]
func (g *Grid) breakWall(from, to Position) {
	a, b := g.CellAt(from.Col, from.Row), g.CellAt(to.Col, to.Row)
	switch {
	case to.Row == from.Row && to.Col == from.Col-1:
		a.Left, b.Right = false, false
	case to.Row == from.Row && to.Col == from.Col+1:
		a.Right, b.Left = false, false
	case to.Col == from.Col && to.Row == from.Row-1:
		a.Top, b.Bottom = false, false
	case to.Col == from.Col && to.Row == from.Row+1:
		a.Bottom, b.Top = false, false
	default:
		panic(AssertionError{fmt.Sprintf("cells %s and %s are not adjacent", from, to)})
	}
}

func (g *Grid) bounds(pos Position) Bounds {
	x1 := g.x + float64(pos.Col)*g.cellWidth
	y1 := g.y + float64(pos.Row)*g.cellHeight
	return Bounds{X1: x1, Y1: y1, X2: x1 + g.cellWidth, Y2: y1 + g.cellHeight}
}

func (g *Grid) render(pos Position) {
	cell := g.CellAt(pos.Col, pos.Row)
	cell.Bounds = g.bounds(pos)
	g.renderer.RenderCell(pos, cell.Walls(), cell.Bounds)
}

func (g *Grid) animate() {
	g.renderer.AnimateTick()
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	var b strings.Builder
	b.WriteByte('+')
	for col := range g.cols {
		b.WriteString(segment(g.cells[col][0].Top, "---", "   "))
		b.WriteByte('+')
	}
	b.WriteByte('\n')

	for row := range g.rows {
		for col := range g.cols {
			b.WriteString(segment(g.cells[col][row].Left, "|", " "))
			b.WriteString("   ")
		}
		b.WriteString(segment(g.cells[g.cols-1][row].Right, "|", " "))
		b.WriteByte('\n')

		b.WriteByte('+')
		for col := range g.cols {
			b.WriteString(segment(g.cells[col][row].Bottom, "---", "   "))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func segment(wall bool, closed, open string) string {
	if wall {
		return closed
	}
	return open
}
