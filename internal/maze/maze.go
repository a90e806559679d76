package maze

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// DefaultRecursionLimit is the cell count above which [New] switches to the
// iterative traversal.
const DefaultRecursionLimit = 4096

type Options struct {
	Cols, Rows int
	// Seed makes the maze reproducible. A random seed is drawn when nil.
	Seed *uint64

	X, Y                  float64
	CellWidth, CellHeight float64
	Renderer              Renderer

	Iterative      bool
	RecursionLimit int
}

func (o Options) iterative() bool {
	limit := o.RecursionLimit
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	return o.Iterative || o.Cols*o.Rows > limit
}

type Maze struct {
	*Grid
	Seed uint64
}

func RandomSeed() uint64 {
	return new(maphash.Hash).Sum64()
}

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// New builds a grid and generates a perfect maze on it.
func New(ctx context.Context, opts Options) (m *Maze, err error) {
	defer func() {
		var ae AssertionError
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				m, err = nil, ae
				return
			}
			panic(r)
		}
	}()

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = RandomSeed()
	}

	grid, err := NewGrid(GridConfig{
		Cols: opts.Cols, Rows: opts.Rows,
		X: opts.X, Y: opts.Y,
		CellWidth: opts.CellWidth, CellHeight: opts.CellHeight,
		Renderer: opts.Renderer,
	})
	if err != nil {
		return nil, err
	}

	gen := NewGenerator(grid, NewRand(seed))
	if opts.iterative() {
		err = gen.GenerateIterative(ctx)
	} else {
		err = gen.Generate(ctx)
	}
	if err != nil {
		return nil, err
	}

	Log.WithFields(logrus.Fields{
		"cols":      opts.Cols,
		"rows":      opts.Rows,
		"seed":      seed,
		"iterative": opts.iterative(),
	}).Debug("maze generated")

	return &Maze{Grid: grid, Seed: seed}, nil
}

// Snapshot is the persistent wall state of a maze. Walls are stored in
// column-major order.
type Snapshot struct {
	Cols, Rows int
	Seed       uint64
	Walls      []Walls
}

func (m *Maze) Snapshot() Snapshot {
	s := m.Grid.Snapshot()
	s.Seed = m.Seed
	return s
}

func (g *Grid) Snapshot() Snapshot {
	walls := make([]Walls, 0, g.cols*g.rows)
	for cell := range g.Cells() {
		walls = append(walls, cell.Walls())
	}
	return Snapshot{Cols: g.cols, Rows: g.rows, Walls: walls}
}

// Maze restores the grid described by the snapshot without rendering it.
func (s Snapshot) Maze() (*Maze, error) {
	if len(s.Walls) != s.Cols*s.Rows {
		return nil, fmt.Errorf(
			"snapshot has %d cells, want %dx%d", len(s.Walls), s.Cols, s.Rows,
		)
	}
	grid, err := NewGrid(GridConfig{Cols: s.Cols, Rows: s.Rows})
	if err != nil {
		return nil, err
	}
	i := 0
	for cell := range grid.Cells() {
		cell.setWalls(s.Walls[i])
		i++
	}
	return &Maze{Grid: grid, Seed: s.Seed}, nil
}

func (s Snapshot) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSnapshot(buf []byte) (*Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
