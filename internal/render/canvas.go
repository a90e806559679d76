package render

import (
	"github.com/vancomm/maze-server/internal/maze"
)

const (
	DefaultColor      = "black"
	DefaultBackground = "white"
)

// Canvas records the line segments a drawing surface would receive.
type Canvas struct {
	Color      string
	Background string
	lines      []Line
	frames     int
}

func NewCanvas() *Canvas {
	return &Canvas{Color: DefaultColor, Background: DefaultBackground}
}

// [*Canvas] implements [maze.Renderer]
func (c *Canvas) RenderCell(_ maze.Position, walls maze.Walls, bounds maze.Bounds) {
	c.lines = append(c.lines, WallLines(walls, bounds, c.Color, c.Background)...)
}

func (c *Canvas) AnimateTick() {
	c.frames++
}

func (c *Canvas) Lines() []Line {
	return c.lines
}

func (c *Canvas) Frames() int {
	return c.frames
}

// Visible collapses the draw history into the segments that end up in
// the foreground color, in drawing order of their last stroke.
func (c *Canvas) Visible() []Line {
	type key struct{ from, to Point }
	last := make(map[key]int, len(c.lines))
	for i, l := range c.lines {
		last[key{l.From, l.To}] = i
	}
	visible := make([]Line, 0, len(last))
	for i, l := range c.lines {
		if last[key{l.From, l.To}] == i && l.Color != c.Background {
			visible = append(visible, l)
		}
	}
	return visible
}
