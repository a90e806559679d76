package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vancomm/maze-server/internal/maze"
)

var (
	ErrNotFound = errors.New("maze not found")
)

// Maze is a generated maze as kept by a [Store].
type Maze struct {
	MazeId    string
	Snapshot  maze.Snapshot
	CreatedAt time.Time
}

type MazeFilter struct {
	Cols  *int
	Rows  *int
	Limit int
}

const DefaultLimit = 50

func (f MazeFilter) limit() int {
	if f.Limit <= 0 || f.Limit > DefaultLimit {
		return DefaultLimit
	}
	return f.Limit
}

func (f MazeFilter) match(s maze.Snapshot) bool {
	return (f.Cols == nil || *f.Cols == s.Cols) &&
		(f.Rows == nil || *f.Rows == s.Rows)
}

// Store persists generated mazes. Creating a maze whose dimensions and seed
// are already stored returns the stored one.
type Store interface {
	CreateMaze(ctx context.Context, m *maze.Maze) (*Maze, error)
	FetchMaze(ctx context.Context, mazeId string) (*Maze, error)
	ListMazes(ctx context.Context, filter MazeFilter) ([]Maze, error)
}
