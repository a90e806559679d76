package app

import (
	"github.com/vancomm/maze-server/internal/handlers"
)

func (a *App) loadRoutes() {
	mazes := handlers.NewMazeHandler(a.log, a.store, a.config.Maze)

	a.router.HandleFunc("GET /v1/status", handlers.Status)
	a.router.HandleFunc("POST /v1/maze", mazes.Create)
	a.router.HandleFunc("GET /v1/mazes", mazes.List)
	a.router.HandleFunc("GET /v1/maze/{id}", mazes.Fetch)
	a.router.HandleFunc("GET /v1/maze/{id}/text", mazes.Text)
	a.router.HandleFunc("/v1/maze/{id}/connect", mazes.Connect)
}
