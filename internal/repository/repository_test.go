package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/maze-server/internal/maze"
)

func newMaze(t *testing.T, cols, rows int, seed uint64) *maze.Maze {
	t.Helper()
	m, err := maze.New(context.Background(), maze.Options{Cols: cols, Rows: rows, Seed: &seed})
	require.NoError(t, err)
	return m
}

func TestMemoryStoreCreateAndFetch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m := newMaze(t, 4, 3, 9)
	created, err := s.CreateMaze(ctx, m)
	require.NoError(t, err)
	assert.NotEmpty(t, created.MazeId)
	assert.Equal(t, m.Snapshot(), created.Snapshot)

	fetched, err := s.FetchMaze(ctx, created.MazeId)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	_, err = s.FetchMaze(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeduplicatesSeeds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.CreateMaze(ctx, newMaze(t, 5, 5, 1))
	require.NoError(t, err)
	again, err := s.CreateMaze(ctx, newMaze(t, 5, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, first.MazeId, again.MazeId)

	other, err := s.CreateMaze(ctx, newMaze(t, 5, 4, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first.MazeId, other.MazeId)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for seed := range uint64(4) {
		_, err := s.CreateMaze(ctx, newMaze(t, 3, 3, seed))
		require.NoError(t, err)
	}
	_, err := s.CreateMaze(ctx, newMaze(t, 6, 2, 0))
	require.NoError(t, err)

	all, err := s.ListMazes(ctx, MazeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, 6, all[0].Snapshot.Cols)
	assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))

	cols := 3
	filtered, err := s.ListMazes(ctx, MazeFilter{Cols: &cols, Limit: 2})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, uint64(3), filtered[0].Snapshot.Seed)
	assert.Equal(t, uint64(2), filtered[1].Snapshot.Seed)
}

func TestMazeFilterWhereClause(t *testing.T) {
	clause, args := MazeFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	cols, rows := 4, 7
	clause, args = MazeFilter{Cols: &cols, Rows: &rows}.WhereClause()
	assert.Equal(t, "cols = @cols AND rows = @rows", clause)
	assert.Equal(t, pgx.NamedArgs{"cols": 4, "rows": 7}, args)

	assert.Equal(t, DefaultLimit, MazeFilter{Limit: 1000}.limit())
	assert.Equal(t, 3, MazeFilter{Limit: 3}.limit())
}
