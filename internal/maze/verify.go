package maze

import "fmt"

// Verify checks that g holds a perfect maze: symmetric internal walls, a
// closed boundary except for the entrance and the exit, no visited marks
// left behind, and an open-wall graph that is a spanning tree.
func Verify(g *Grid) error {
	entrance := g.CellAt(0, 0)
	if entrance.Top {
		return &ValidationError{"entrance", "top wall of 0:0 is closed"}
	}
	exit := g.CellAt(g.cols-1, g.rows-1)
	if exit.Bottom {
		return &ValidationError{"exit", fmt.Sprintf("bottom wall of %s is closed", exit.Position)}
	}

	edges := 0
	for cell := range g.Cells() {
		pos := cell.Position
		if cell.Visited {
			return &ValidationError{"visited", fmt.Sprintf("cell %s is still visited", pos)}
		}
		if pos.Col == 0 && !cell.Left ||
			pos.Col == g.cols-1 && !cell.Right ||
			pos.Row == 0 && !cell.Top && cell != entrance ||
			pos.Row == g.rows-1 && !cell.Bottom && cell != exit {
			return &ValidationError{"boundary", fmt.Sprintf("cell %s has an open outer wall", pos)}
		}
		if pos.Col+1 < g.cols {
			right := g.CellAt(pos.Col+1, pos.Row)
			if cell.Right != right.Left {
				return &ValidationError{"symmetry", fmt.Sprintf("wall between %s and %s is one-sided", pos, right.Position)}
			}
			if !cell.Right {
				edges++
			}
		}
		if pos.Row+1 < g.rows {
			below := g.CellAt(pos.Col, pos.Row+1)
			if cell.Bottom != below.Top {
				return &ValidationError{"symmetry", fmt.Sprintf("wall between %s and %s is one-sided", pos, below.Position)}
			}
			if !cell.Bottom {
				edges++
			}
		}
	}

	total := g.cols * g.rows
	if edges != total-1 {
		return &ValidationError{"spanning tree", fmt.Sprintf("%d passages for %d cells", edges, total)}
	}
	if reached := g.reachable(Position{0, 0}); reached != total {
		return &ValidationError{"connectivity", fmt.Sprintf("%d of %d cells reachable", reached, total)}
	}
	return nil
}

// Passages returns the neighbours of pos that are reachable through an
// open wall.
func (g *Grid) Passages(pos Position) []Position {
	cell := g.CellAt(pos.Col, pos.Row)
	open := [...]bool{!cell.Left, !cell.Right, !cell.Top, !cell.Bottom}
	result := make([]Position, 0, len(offsets))
	for i, d := range offsets {
		col, row := pos.Col+d.Col, pos.Row+d.Row
		if open[i] && g.InBounds(col, row) {
			result = append(result, Position{col, row})
		}
	}
	return result
}

func (g *Grid) reachable(start Position) int {
	seen := make([]bool, g.cols*g.rows)
	seen[start.Col*g.rows+start.Row] = true
	queue := []Position{start}
	count := 0
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		count++
		for _, next := range g.Passages(pos) {
			i := next.Col*g.rows + next.Row
			if !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}
	return count
}
