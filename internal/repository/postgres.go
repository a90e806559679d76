package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/maze-server/internal/maze"
)

var Log = logrus.New()

type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type mazeRow struct {
	MazeId    string             `db:"maze_id"`
	Cols      int                `db:"cols"`
	Rows      int                `db:"rows"`
	Seed      int64              `db:"seed"`
	State     []byte             `db:"state"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
}

func (r mazeRow) decode() (*Maze, error) {
	snapshot, err := maze.DecodeSnapshot(r.State)
	if err != nil {
		return nil, fmt.Errorf("unable to decode maze %s: %w", r.MazeId, err)
	}
	return &Maze{
		MazeId:    r.MazeId,
		Snapshot:  *snapshot,
		CreatedAt: r.CreatedAt.Time,
	}, nil
}

func collectMaze(rows pgx.Rows) (*Maze, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[mazeRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return row.decode()
}

func (q *Queries) CreateMaze(ctx context.Context, m *maze.Maze) (*Maze, error) {
	snapshot := m.Snapshot()
	state, err := snapshot.Bytes()
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO maze (maze_id, cols, rows, seed, state)
		VALUES (@maze_id, @cols, @rows, @seed, @state)
		RETURNING maze_id, cols, rows, seed, state, created_at;`,
		pgx.NamedArgs{
			"maze_id": uuid.NewString(),
			"cols":    snapshot.Cols,
			"rows":    snapshot.Rows,
			"seed":    int64(snapshot.Seed),
			"state":   state,
		},
	)
	created, err := collectMaze(rows)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		Log.WithFields(logrus.Fields{
			"cols": snapshot.Cols,
			"rows": snapshot.Rows,
			"seed": snapshot.Seed,
		}).Debug("maze already stored")
		return q.fetchBySeed(ctx, snapshot)
	}
	return created, err
}

func (q *Queries) fetchBySeed(ctx context.Context, s maze.Snapshot) (*Maze, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT maze_id, cols, rows, seed, state, created_at
		FROM maze
		WHERE cols = @cols AND rows = @rows AND seed = @seed;`,
		pgx.NamedArgs{"cols": s.Cols, "rows": s.Rows, "seed": int64(s.Seed)},
	)
	return collectMaze(rows)
}

func (q *Queries) FetchMaze(ctx context.Context, mazeId string) (*Maze, error) {
	if _, err := uuid.Parse(mazeId); err != nil {
		return nil, ErrNotFound
	}
	rows, _ := q.db.Query(
		ctx,
		`SELECT maze_id, cols, rows, seed, state, created_at
		FROM maze
		WHERE maze_id = $1;`,
		mazeId,
	)
	return collectMaze(rows)
}

func (f MazeFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Cols != nil {
		clauses = append(clauses, "cols = @cols")
		args["cols"] = *f.Cols
	}
	if f.Rows != nil {
		clauses = append(clauses, "rows = @rows")
		args["rows"] = *f.Rows
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) ListMazes(ctx context.Context, filter MazeFilter) ([]Maze, error) {
	query := `SELECT maze_id, cols, rows, seed, state, created_at FROM maze`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY created_at DESC LIMIT @limit;"
	args["limit"] = filter.limit()

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[mazeRow])
	if err != nil {
		return nil, err
	}
	mazes := make([]Maze, 0, len(records))
	for _, r := range records {
		m, err := r.decode()
		if err != nil {
			return nil, err
		}
		mazes = append(mazes, *m)
	}
	return mazes, nil
}
