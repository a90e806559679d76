package render

import (
	"github.com/vancomm/maze-server/internal/maze"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Line struct {
	From  Point  `json:"from"`
	To    Point  `json:"to"`
	Color string `json:"color"`
}

// WallLines returns one segment per side of the cell. Closed walls are drawn
// with color, open ones with background so that a redraw erases them.
func WallLines(walls maze.Walls, b maze.Bounds, color, background string) []Line {
	pick := func(wall maze.Walls) string {
		if walls.Has(wall) {
			return color
		}
		return background
	}
	return []Line{
		{Point{b.X1, b.Y1}, Point{b.X1, b.Y2}, pick(maze.WallLeft)},
		{Point{b.X2, b.Y1}, Point{b.X2, b.Y2}, pick(maze.WallRight)},
		{Point{b.X1, b.Y1}, Point{b.X2, b.Y1}, pick(maze.WallTop)},
		{Point{b.X1, b.Y2}, Point{b.X2, b.Y2}, pick(maze.WallBottom)},
	}
}
