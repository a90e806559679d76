package maze

// Renderer receives drawing requests from the grid and the generator.
// RenderCell asks for a cell's walls to be (re)drawn inside bounds,
// AnimateTick marks the end of one generation step.
type Renderer interface {
	RenderCell(pos Position, walls Walls, bounds Bounds)
	AnimateTick()
}

type NopRenderer struct{}

func (NopRenderer) RenderCell(Position, Walls, Bounds) {}

func (NopRenderer) AnimateTick() {}
