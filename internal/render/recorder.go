package render

import (
	"github.com/vancomm/maze-server/internal/maze"
)

type EventKind string

const (
	EventCell EventKind = "cell"
	EventTick EventKind = "tick"
)

// Event is one renderer call. Step counts the animate ticks issued before it.
type Event struct {
	Kind  EventKind      `json:"kind"`
	Step  int            `json:"step"`
	Pos   *maze.Position `json:"pos,omitempty"`
	Walls *uint8         `json:"walls,omitempty"`
}

// Recorder keeps every renderer call in order, or hands it to Emit when set.
type Recorder struct {
	Emit   func(Event)
	events []Event
	step   int
}

func (r *Recorder) record(e Event) {
	if r.Emit != nil {
		r.Emit(e)
		return
	}
	r.events = append(r.events, e)
}

// [*Recorder] implements [maze.Renderer]
func (r *Recorder) RenderCell(pos maze.Position, walls maze.Walls, _ maze.Bounds) {
	w := uint8(walls)
	r.record(Event{Kind: EventCell, Step: r.step, Pos: &pos, Walls: &w})
}

func (r *Recorder) AnimateTick() {
	r.step++
	r.record(Event{Kind: EventTick, Step: r.step})
}

func (r *Recorder) Events() []Event {
	return r.events
}
