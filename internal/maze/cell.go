package maze

import (
	"fmt"
	"strings"
)

type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Position implements [fmt.Stringer]
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Col, p.Row)
}

// Walls is a bit set of the closed walls of a cell.
type Walls uint8

const (
	WallTop Walls = 1 << iota
	WallBottom
	WallLeft
	WallRight

	AllWalls Walls = WallTop | WallBottom | WallLeft | WallRight
)

func (w Walls) Has(wall Walls) bool {
	return w&wall == wall
}

func (w Walls) String() string {
	var b strings.Builder
	for _, wall := range []struct {
		bit  Walls
		name byte
	}{{WallTop, 'T'}, {WallBottom, 'B'}, {WallLeft, 'L'}, {WallRight, 'R'}} {
		if w.Has(wall.bit) {
			b.WriteByte(wall.name)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Bounds is the rectangle a cell occupies on the renderer's canvas.
type Bounds struct {
	X1, Y1, X2, Y2 float64
}

type Cell struct {
	Top, Bottom, Left, Right bool
	Visited                  bool
	Bounds                   Bounds
	Position
}

func newCell(col, row int) Cell {
	return Cell{
		Top:      true,
		Bottom:   true,
		Left:     true,
		Right:    true,
		Position: Position{Col: col, Row: row},
	}
}

func (c *Cell) Walls() (w Walls) {
	if c.Top {
		w |= WallTop
	}
	if c.Bottom {
		w |= WallBottom
	}
	if c.Left {
		w |= WallLeft
	}
	if c.Right {
		w |= WallRight
	}
	return
}

// setWalls only ever opens walls; a wall cleared in c stays cleared.
func (c *Cell) setWalls(w Walls) {
	c.Top = c.Top && w.Has(WallTop)
	c.Bottom = c.Bottom && w.Has(WallBottom)
	c.Left = c.Left && w.Has(WallLeft)
	c.Right = c.Right && w.Has(WallRight)
}
