package handlers

import (
	"strconv"

	"github.com/gorilla/schema"
	"github.com/vancomm/maze-server/internal/repository"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type CreateMazeDTO struct {
	Cols      int     `schema:"cols"`
	Rows      int     `schema:"rows"`
	Seed      *uint64 `schema:"seed"`
	Iterative bool    `schema:"iterative"`
}

func ParseCreateMazeDTO(src map[string][]string) (CreateMazeDTO, error) {
	var dto CreateMazeDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type ListMazesDTO struct {
	Cols  *int `schema:"cols"`
	Rows  *int `schema:"rows"`
	Limit int  `schema:"limit"`
}

func ParseListMazesDTO(src map[string][]string) (ListMazesDTO, error) {
	var dto ListMazesDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type ReplayDTO struct {
	DelayMs *int `schema:"delay_ms"`
}

func ParseReplayDTO(src map[string][]string) (ReplayDTO, error) {
	var dto ReplayDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type MazeDTO struct {
	MazeId string `json:"maze_id"`
	Cols   int    `json:"cols"`
	Rows   int    `json:"rows"`
	// uint64 does not survive a JSON number in browsers
	Seed      string `json:"seed"`
	Walls     []int  `json:"walls"`
	CreatedAt int64  `json:"created_at"`
}

func NewMazeDTO(m *repository.Maze) *MazeDTO {
	walls := make([]int, len(m.Snapshot.Walls))
	for i, w := range m.Snapshot.Walls {
		walls[i] = int(w)
	}
	return &MazeDTO{
		MazeId:    m.MazeId,
		Cols:      m.Snapshot.Cols,
		Rows:      m.Snapshot.Rows,
		Seed:      strconv.FormatUint(m.Snapshot.Seed, 10),
		Walls:     walls,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
}
