package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/maze-server/internal/maze"
)

type seedKey struct {
	cols, rows int
	seed       uint64
}

// MemoryStore keeps mazes for the lifetime of the process.
type MemoryStore struct {
	mu     sync.Mutex
	mazes  map[string]*Maze
	bySeed map[seedKey]string
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mazes:  make(map[string]*Maze),
		bySeed: make(map[seedKey]string),
		now:    time.Now,
	}
}

func (s *MemoryStore) CreateMaze(_ context.Context, m *maze.Maze) (*Maze, error) {
	snapshot := m.Snapshot()
	key := seedKey{snapshot.Cols, snapshot.Rows, snapshot.Seed}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.bySeed[key]; ok {
		stored := *s.mazes[id]
		return &stored, nil
	}
	stored := &Maze{
		MazeId:    uuid.NewString(),
		Snapshot:  snapshot,
		CreatedAt: s.now().UTC(),
	}
	s.mazes[stored.MazeId] = stored
	s.bySeed[key] = stored.MazeId
	created := *stored
	return &created, nil
}

func (s *MemoryStore) FetchMaze(_ context.Context, mazeId string) (*Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.mazes[mazeId]
	if !ok {
		return nil, ErrNotFound
	}
	fetched := *stored
	return &fetched, nil
}

func (s *MemoryStore) ListMazes(_ context.Context, filter MazeFilter) ([]Maze, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mazes := make([]Maze, 0)
	for _, m := range s.mazes {
		if filter.match(m.Snapshot) {
			mazes = append(mazes, *m)
		}
	}
	slices.SortFunc(mazes, func(a, b Maze) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.MazeId, b.MazeId)
	})
	if len(mazes) > filter.limit() {
		mazes = mazes[:filter.limit()]
	}
	return mazes, nil
}
