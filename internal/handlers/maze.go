package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

var ErrTooLarge = errors.New("maze is too large")

type MazeHandler struct {
	log      logrus.FieldLogger
	store    repository.Store
	cfg      config.MazeConfig
	upgrader websocket.Upgrader
}

func NewMazeHandler(
	log logrus.FieldLogger,
	store repository.Store,
	cfg config.MazeConfig,
) *MazeHandler {
	return &MazeHandler{
		log:   log,
		store: store,
		cfg:   cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *MazeHandler) options(cols, rows int) (maze.Options, error) {
	if cols == 0 {
		cols = h.cfg.DefaultCols
	}
	if rows == 0 {
		rows = h.cfg.DefaultRows
	}
	if cols <= 0 || rows <= 0 {
		return maze.Options{}, fmt.Errorf(
			"%w (cols = %d, rows = %d)", maze.ErrInvalidDimensions, cols, rows,
		)
	}
	// cols*rows may overflow
	if limit := h.cfg.MaxCells; limit > 0 && (cols > limit || rows > limit/cols) {
		return maze.Options{}, fmt.Errorf(
			"%w: %dx%d exceeds %d cells", ErrTooLarge, cols, rows, h.cfg.MaxCells,
		)
	}
	return maze.Options{
		Cols: cols, Rows: rows,
		CellWidth: h.cfg.CellSize, CellHeight: h.cfg.CellSize,
		RecursionLimit: h.cfg.RecursionLimit,
	}, nil
}

func (h *MazeHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateMazeDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	opts, err := h.options(dto.Cols, dto.Rows)
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	opts.Seed = dto.Seed
	opts.Iterative = dto.Iterative

	m, err := maze.New(r.Context(), opts)
	if errors.Is(err, maze.ErrInvalidDimensions) {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to generate maze")
		return
	}
	if err := maze.Verify(m.Grid); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).WithField("seed", m.Seed).Error("generated an invalid maze")
		return
	}

	stored, err := h.store.CreateMaze(r.Context(), m)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to store maze")
		return
	}

	h.log.WithFields(logrus.Fields{
		"maze_id": stored.MazeId,
		"cols":    m.Cols(),
		"rows":    m.Rows(),
		"seed":    m.Seed,
	}).Debug("created maze")

	sendJSONOrLog(w, h.log, NewMazeDTO(stored))
}

func (h *MazeHandler) fetch(w http.ResponseWriter, r *http.Request) (*repository.Maze, bool) {
	stored, err := h.store.FetchMaze(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		sendErrorOrLog(w, h.log, http.StatusNotFound, err)
		return nil, false
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch maze")
		return nil, false
	}
	return stored, true
}

func (h *MazeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	stored, ok := h.fetch(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.log, NewMazeDTO(stored))
}

func (h *MazeHandler) Text(w http.ResponseWriter, r *http.Request) {
	stored, ok := h.fetch(w, r)
	if !ok {
		return
	}
	m, err := stored.Snapshot.Maze()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).WithField("maze_id", stored.MazeId).Error("unable to restore maze")
		return
	}
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(m.String())); err != nil {
		h.log.WithError(err).Warn("unable to write maze text")
	}
}

func (h *MazeHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseListMazesDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	mazes, err := h.store.ListMazes(r.Context(), repository.MazeFilter(dto))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to list mazes")
		return
	}
	result := make([]*MazeDTO, 0, len(mazes))
	for i := range mazes {
		result = append(result, NewMazeDTO(&mazes[i]))
	}
	sendJSONOrLog(w, h.log, result)
}
