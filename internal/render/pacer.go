package render

import (
	"time"

	"github.com/vancomm/maze-server/internal/maze"
)

// Pacer delays after each animate tick so a live renderer can keep up.
type Pacer struct {
	maze.Renderer
	Delay time.Duration
	sleep func(time.Duration)
}

func NewPacer(r maze.Renderer, delay time.Duration) *Pacer {
	return &Pacer{Renderer: r, Delay: delay, sleep: time.Sleep}
}

func (p *Pacer) AnimateTick() {
	p.Renderer.AnimateTick()
	if p.Delay <= 0 {
		return
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	p.sleep(p.Delay)
}

type multi []maze.Renderer

// Multi fans renderer calls out to every renderer in order.
func Multi(renderers ...maze.Renderer) maze.Renderer {
	return multi(renderers)
}

func (m multi) RenderCell(pos maze.Position, walls maze.Walls, bounds maze.Bounds) {
	for _, r := range m {
		r.RenderCell(pos, walls, bounds)
	}
}

func (m multi) AnimateTick() {
	for _, r := range m {
		r.AnimateTick()
	}
}
