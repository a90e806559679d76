package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/render"
)

type ReplayDone struct {
	Kind   string `json:"kind"`
	MazeId string `json:"maze_id"`
	Steps  int    `json:"steps"`
}

func (h *MazeHandler) replayDelay(dto ReplayDTO) time.Duration {
	delay := h.cfg.ReplayDelay.Duration
	if dto.DelayMs != nil {
		ms := min(max(int64(*dto.DelayMs), 0), int64(math.MaxInt64/time.Millisecond))
		delay = time.Duration(ms) * time.Millisecond
	}
	delay = max(delay, 0)
	if limit := h.cfg.MaxReplayDelay.Duration; limit > 0 {
		delay = min(delay, limit)
	}
	return delay
}

// Connect replays the generation of a stored maze over a websocket, one
// JSON message per renderer call.
func (h *MazeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseReplayDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	stored, ok := h.fetch(w, r)
	if !ok {
		return
	}

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("upgrade")
		return
	}
	defer c.Close()

	log := h.log.WithField("maze_id", stored.MazeId)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the client only ever closes
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.WithError(err).Debug("read")
				}
				return
			}
		}
	}()

	var writeErr error
	steps := 0
	recorder := &render.Recorder{Emit: func(e render.Event) {
		if writeErr != nil {
			return
		}
		steps = e.Step
		if writeErr = c.WriteJSON(e); writeErr != nil {
			cancel()
		}
	}}

	seed := stored.Snapshot.Seed
	opts, err := h.options(stored.Snapshot.Cols, stored.Snapshot.Rows)
	if err != nil {
		log.WithError(err).Warn("replay refused")
		closeWith(c, websocket.ClosePolicyViolation, err.Error())
		return
	}
	opts.Seed = &seed
	opts.Renderer = render.NewPacer(recorder, h.replayDelay(dto))

	replayed, err := maze.New(ctx, opts)
	if errors.Is(err, context.Canceled) {
		log.WithField("steps", steps).Debug("replay aborted")
		return
	} else if err != nil {
		log.WithError(err).Error("unable to replay maze")
		closeWith(c, websocket.CloseInternalServerErr, "replay failed")
		return
	}
	if !slices.Equal(replayed.Snapshot().Walls, stored.Snapshot.Walls) {
		log.WithFields(logrus.Fields{
			"seed": seed,
		}).Warn("replayed maze differs from the stored one")
	}

	if err := c.WriteJSON(ReplayDone{
		Kind: "done", MazeId: stored.MazeId, Steps: steps,
	}); err != nil {
		log.WithError(err).Debug("write")
		return
	}
	closeWith(c, websocket.CloseNormalClosure, "")
}

func closeWith(c *websocket.Conn, code int, text string) {
	c.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(time.Second),
	)
}
