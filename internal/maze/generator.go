package maze

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Generator turns a freshly allocated grid into a perfect maze using a
// randomized depth-first wall-breaking traversal.
type Generator struct {
	grid *Grid
	rnd  *rand.Rand
	done bool
}

func NewGenerator(grid *Grid, rnd *rand.Rand) *Generator {
	return &Generator{grid: grid, rnd: rnd}
}

// Generate carves the maze recursively.
func (g *Generator) Generate(ctx context.Context) error {
	return g.run(ctx, g.breakWallsRecursive)
}

// GenerateIterative carves the same maze as [Generator.Generate] for the same
// random source, keeping the traversal stack on the heap.
func (g *Generator) GenerateIterative(ctx context.Context) error {
	return g.run(ctx, g.breakWallsIterative)
}

func (g *Generator) run(
	ctx context.Context, breakWalls func(context.Context, Position) error,
) error {
	if g.done {
		return ErrAlreadyGenerated
	}
	g.done = true

	g.breakEntranceAndExit()
	if err := breakWalls(ctx, Position{0, 0}); err != nil {
		return fmt.Errorf("unable to break walls: %w", err)
	}
	g.resetVisited()
	g.grid.animate()
	return nil
}

func (g *Generator) breakEntranceAndExit() {
	entrance := Position{0, 0}
	exit := Position{g.grid.cols - 1, g.grid.rows - 1}

	g.grid.CellAt(entrance.Col, entrance.Row).Top = false
	g.grid.render(entrance)

	g.grid.CellAt(exit.Col, exit.Row).Bottom = false
	g.grid.render(exit)
}

func (g *Generator) unvisitedNeighbors(pos Position) []Position {
	candidates := g.grid.Neighbors(pos)
	n := 0
	for _, p := range candidates {
		if !g.grid.cells[p.Col][p.Row].Visited {
			candidates[n] = p
			n++
		}
	}
	return candidates[:n]
}

// carve opens the wall between from and a random unvisited neighbour and
// returns that neighbour. ok is false when from is a dead end.
func (g *Generator) carve(from Position) (to Position, ok bool) {
	candidates := g.unvisitedNeighbors(from)
	if len(candidates) == 0 {
		return Position{}, false
	}
	to = candidates[g.rnd.IntN(len(candidates))]
	g.grid.breakWall(from, to)
	g.grid.render(from)
	g.grid.render(to)
	g.grid.animate()
	return to, true
}

func (g *Generator) breakWallsRecursive(ctx context.Context, pos Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.grid.CellAt(pos.Col, pos.Row).Visited = true
	for {
		next, ok := g.carve(pos)
		if !ok {
			return nil
		}
		if err := g.breakWallsRecursive(ctx, next); err != nil {
			return err
		}
	}
}

func (g *Generator) breakWallsIterative(ctx context.Context, start Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.grid.CellAt(start.Col, start.Row).Visited = true

	stack := make([]Position, 1, g.grid.cols*g.grid.rows)
	stack[0] = start
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		next, ok := g.carve(top)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		g.grid.CellAt(next.Col, next.Row).Visited = true
		stack = append(stack, next)
	}
	return nil
}

func (g *Generator) resetVisited() {
	for cell := range g.grid.Cells() {
		cell.Visited = false
	}
}
