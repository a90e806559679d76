package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/render"
)

var log = logrus.New()

type options struct {
	cols, rows int
	seed       string
	cellSize   float64
	iterative  bool
	lines      bool
	json       bool
	verify     bool
	debug      bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	fs.IntVar(&opts.cols, "cols", 12, "number of columns")
	fs.IntVar(&opts.rows, "rows", 10, "number of rows")
	fs.StringVar(&opts.seed, "seed", "", "random seed (random when empty)")
	fs.Float64Var(&opts.cellSize, "cell-size", 50, "cell size for -lines output")
	fs.BoolVar(&opts.iterative, "iterative", false, "use the explicit-stack traversal")
	fs.BoolVar(&opts.lines, "lines", false, "print the wall segments instead of text")
	fs.BoolVar(&opts.json, "json", false, "print the wall state as JSON")
	fs.BoolVar(&opts.verify, "verify", false, "check the maze before printing it")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

type snapshotJSON struct {
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Seed  string `json:"seed"`
	Walls []int  `json:"walls"`
}

func run(ctx context.Context, opts *options, w io.Writer) error {
	mazeOpts := maze.Options{
		Cols: opts.cols, Rows: opts.rows,
		CellWidth: opts.cellSize, CellHeight: opts.cellSize,
		Iterative: opts.iterative,
	}
	if opts.seed != "" {
		seed, err := strconv.ParseUint(opts.seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", opts.seed, err)
		}
		mazeOpts.Seed = &seed
	}
	canvas := render.NewCanvas()
	if opts.lines {
		mazeOpts.Renderer = canvas
	}

	m, err := maze.New(ctx, mazeOpts)
	if err != nil {
		return err
	}
	if opts.verify {
		if err := maze.Verify(m.Grid); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"cols": m.Cols(),
		"rows": m.Rows(),
		"seed": m.Seed,
	}).Debug("generated")

	switch {
	case opts.json:
		s := m.Snapshot()
		walls := make([]int, len(s.Walls))
		for i, wall := range s.Walls {
			walls[i] = int(wall)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshotJSON{
			Cols: s.Cols, Rows: s.Rows,
			Seed:  strconv.FormatUint(s.Seed, 10),
			Walls: walls,
		})
	case opts.lines:
		for _, l := range canvas.Visible() {
			if _, err := fmt.Fprintf(w, "%g,%g %g,%g\n", l.From.X, l.From.Y, l.To.X, l.To.Y); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "seed %d\n%s", m.Seed, m.String())
		return err
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetOutput(os.Stderr)
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
		maze.Log.SetLevel(logrus.DebugLevel)
	}

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
