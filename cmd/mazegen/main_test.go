package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/maze-server/internal/maze"
)

func TestRunText(t *testing.T) {
	opts, err := parseFlags([]string{"-cols", "2", "-rows", "1", "-seed", "4", "-verify"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))
	assert.Equal(t, "seed 4\n+   +---+\n|       |\n+---+   +\n", out.String())
}

func TestRunJSON(t *testing.T) {
	opts, err := parseFlags([]string{"-cols", "5", "-rows", "4", "-seed", "12", "-json"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))

	var s snapshotJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, 5, s.Cols)
	assert.Equal(t, "12", s.Seed)
	assert.Len(t, s.Walls, 20)

	seed := uint64(12)
	m, err := maze.New(context.Background(), maze.Options{Cols: 5, Rows: 4, Seed: &seed})
	require.NoError(t, err)
	for i, w := range m.Snapshot().Walls {
		assert.Equal(t, int(w), s.Walls[i])
	}
}

func TestRunLines(t *testing.T) {
	opts, err := parseFlags([]string{"-cols", "1", "-rows", "1", "-seed", "1", "-lines", "-cell-size", "10"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))
	assert.Equal(t, "0,0 0,10\n10,0 10,10\n", out.String())
}

func TestRunErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-cols", "0"},
		{"-seed", "x"},
	} {
		opts, err := parseFlags(args)
		require.NoError(t, err)
		assert.Error(t, run(context.Background(), opts, &bytes.Buffer{}), "%v", args)
	}

	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}
