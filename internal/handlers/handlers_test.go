package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/render"
	"github.com/vancomm/maze-server/internal/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log, _ := test.NewNullLogger()
	cfg := config.Default().Maze
	cfg.MaxCells = 400
	h := NewMazeHandler(log, repository.NewMemoryStore(), cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/status", Status)
	mux.HandleFunc("POST /v1/maze", h.Create)
	mux.HandleFunc("GET /v1/mazes", h.List)
	mux.HandleFunc("GET /v1/maze/{id}", h.Fetch)
	mux.HandleFunc("GET /v1/maze/{id}/text", h.Text)
	mux.HandleFunc("/v1/maze/{id}/connect", h.Connect)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func createMaze(t *testing.T, srv *httptest.Server, query string) MazeDTO {
	t.Helper()
	res, err := http.Post(srv.URL+"/v1/maze?"+query, "", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var dto MazeDTO
	require.NoError(t, json.NewDecoder(res.Body).Decode(&dto))
	return dto
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t)
	res, err := http.Get(srv.URL + "/v1/status")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestCreateAndFetchMaze(t *testing.T) {
	srv := newTestServer(t)

	created := createMaze(t, srv, "cols=2&rows=1&seed=7")
	assert.Equal(t, 2, created.Cols)
	assert.Equal(t, 1, created.Rows)
	assert.Equal(t, "7", created.Seed)
	// left+bottom for the first cell, right+top for the second
	assert.Equal(t, []int{2 | 4, 1 | 8}, created.Walls)

	res, err := http.Get(srv.URL + "/v1/maze/" + created.MazeId)
	require.NoError(t, err)
	defer res.Body.Close()
	var fetched MazeDTO
	require.NoError(t, json.NewDecoder(res.Body).Decode(&fetched))
	assert.Equal(t, created, fetched)

	res, err = http.Get(srv.URL + "/v1/maze/" + created.MazeId + "/text")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "+   +---+\n|       |\n+---+   +\n", string(body))
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
}

func TestCreateMazeDefaultsAndDeduplication(t *testing.T) {
	srv := newTestServer(t)

	first := createMaze(t, srv, "seed=99")
	assert.Equal(t, 12, first.Cols)
	assert.Equal(t, 10, first.Rows)
	assert.Len(t, first.Walls, 120)

	again := createMaze(t, srv, "seed=99&iterative=true")
	assert.Equal(t, first.MazeId, again.MazeId)
	assert.Equal(t, first.Walls, again.Walls)

	random := createMaze(t, srv, "cols=3&rows=3")
	assert.NotEqual(t, first.MazeId, random.MazeId)
}

func TestCreateMazeBadRequests(t *testing.T) {
	srv := newTestServer(t)

	for _, query := range []string{
		"cols=-1&rows=3",
		"cols=3&rows=-2",
		"cols=100&rows=100",
		"cols=4294967296&rows=4294967296",
		"cols=4611686018427387904&rows=4",
		"cols=1&rows=9223372036854775807",
		"cols=abc",
		"seed=-5",
	} {
		res, err := http.Post(srv.URL+"/v1/maze?"+query, "", nil)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, query)
	}
}

func TestFetchUnknownMaze(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/v1/maze/missing", "/v1/maze/missing/text"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode, path)
	}
}

func TestListMazes(t *testing.T) {
	srv := newTestServer(t)
	createMaze(t, srv, "cols=3&rows=3&seed=1")
	createMaze(t, srv, "cols=3&rows=3&seed=2")
	createMaze(t, srv, "cols=4&rows=3&seed=1")

	list := func(query string) []MazeDTO {
		res, err := http.Get(srv.URL + "/v1/mazes?" + query)
		require.NoError(t, err)
		defer res.Body.Close()
		var mazes []MazeDTO
		require.NoError(t, json.NewDecoder(res.Body).Decode(&mazes))
		return mazes
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list("cols=3"), 2)
	assert.Len(t, list("cols=4&rows=3"), 1)
	assert.Len(t, list("limit=1"), 1)
	assert.Empty(t, list("rows=9"))
}

func TestConnectReplaysGeneration(t *testing.T) {
	srv := newTestServer(t)
	created := createMaze(t, srv, "cols=3&rows=2&seed=5")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/v1/maze/" + created.MazeId + "/connect?delay_ms=0"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))

	var (
		cells, ticks int
		walls        = make(map[[2]int]uint8)
		done         ReplayDone
	)
	for {
		_, msg, err := c.ReadMessage()
		require.NoError(t, err)
		if strings.Contains(string(msg), `"done"`) {
			require.NoError(t, json.Unmarshal(msg, &done))
			break
		}
		var e render.Event
		require.NoError(t, json.Unmarshal(msg, &e))
		switch e.Kind {
		case render.EventCell:
			cells++
			walls[[2]int{e.Pos.Col, e.Pos.Row}] = *e.Walls
		case render.EventTick:
			ticks++
		}
	}

	n := 3 * 2
	assert.Equal(t, n+2+2*(n-1), cells)
	assert.Equal(t, n, ticks)
	assert.Equal(t, n, done.Steps)
	assert.Equal(t, created.MazeId, done.MazeId)
	for i, w := range created.Walls {
		col, row := i/2, i%2
		assert.Equal(t, uint8(w), walls[[2]int{col, row}], "cell %d:%d", col, row)
	}
}

func TestReplayDelay(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := config.Default().Maze
	h := NewMazeHandler(log, repository.NewMemoryStore(), cfg)

	ms := func(v int) *int { return &v }
	assert.Equal(t, cfg.ReplayDelay.Duration, h.replayDelay(ReplayDTO{}))
	assert.Equal(t, time.Duration(0), h.replayDelay(ReplayDTO{DelayMs: ms(0)}))
	assert.Equal(t, time.Duration(0), h.replayDelay(ReplayDTO{DelayMs: ms(-10)}))
	assert.Equal(t, 20*time.Millisecond, h.replayDelay(ReplayDTO{DelayMs: ms(20)}))
	assert.Equal(t, cfg.MaxReplayDelay.Duration, h.replayDelay(ReplayDTO{DelayMs: ms(60_000)}))

	cfg.MaxReplayDelay.Duration = 0
	h = NewMazeHandler(log, repository.NewMemoryStore(), cfg)
	assert.Equal(t, time.Minute, h.replayDelay(ReplayDTO{DelayMs: ms(60_000)}))
	assert.Equal(t,
		(math.MaxInt64/time.Millisecond)*time.Millisecond,
		h.replayDelay(ReplayDTO{DelayMs: ms(math.MaxInt)}),
	)
}

func TestOptionsLimit(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := config.Default().Maze
	h := NewMazeHandler(log, repository.NewMemoryStore(), cfg)

	for _, dims := range [][2]int{
		{1 << 32, 1 << 32},
		{1 << 62, 4},
		{cfg.MaxCells + 1, 1},
		{1, cfg.MaxCells + 1},
		{501, 500},
	} {
		_, err := h.options(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrTooLarge, "%dx%d", dims[0], dims[1])
	}

	_, err := h.options(-3, 4)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

	opts, err := h.options(500, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, opts.Cols)
	assert.Equal(t, 500, opts.Rows)
}
