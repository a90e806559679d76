package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint16 `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

func (p PostgresConfig) URL() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, url.QueryEscape(p.Password), p.Host, p.Port, p.DbName, sslMode,
	)
}

type MazeConfig struct {
	DefaultCols    int      `json:"default_cols"`
	DefaultRows    int      `json:"default_rows"`
	MaxCells       int      `json:"max_cells"`
	CellSize       float64  `json:"cell_size"`
	RecursionLimit int      `json:"recursion_limit"`
	ReplayDelay    Duration `json:"replay_delay"`
	MaxReplayDelay Duration `json:"max_replay_delay"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Mode        string         `json:"mode"`
	Addr        string         `json:"addr"`
	Storage     string         `json:"storage"`
	DatabaseURL string         `json:"database_url"`
	Postgres    PostgresConfig `json:"postgres"`
	Maze        MazeConfig     `json:"maze"`
	Log         LogConfig      `json:"log"`
	// CorsOrigins lists the allowed origins; empty allows any.
	CorsOrigins []string       `json:"cors_origins"`
}

func Default() *Config {
	return &Config{
		Mode:    "development",
		Addr:    ":8080",
		Storage: StorageMemory,
		Postgres: PostgresConfig{
			Host: "localhost", Port: 5432, SSLMode: "disable",
		},
		Maze: MazeConfig{
			DefaultCols:    12,
			DefaultRows:    10,
			MaxCells:       250_000,
			CellSize:       50,
			ReplayDelay:    Duration{50 * time.Millisecond},
			MaxReplayDelay: Duration{time.Second},
		},
		Log: LogConfig{MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 28},
	}
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// ApplyEnv loads .env if present and lets the environment override the
// file configuration.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		c.DatabaseURL = dbURL
		c.Storage = StoragePostgres
	}
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		c.Postgres.Password = password
	}
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok {
		if development != "0" {
			c.Mode = "development"
		} else {
			c.Mode = "production"
		}
	}
	return nil
}

func (c Config) DbURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Postgres.URL()
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                 c.Mode,
		"addr":                 c.Addr,
		"storage":              c.Storage,
		"pg_host":              c.Postgres.Host,
		"pg_port":              c.Postgres.Port,
		"pg_user":              c.Postgres.User,
		"pg_db_name":           c.Postgres.DbName,
		"maze_default_cols":    c.Maze.DefaultCols,
		"maze_default_rows":    c.Maze.DefaultRows,
		"maze_max_cells":       c.Maze.MaxCells,
		"maze_recursion_limit": c.Maze.RecursionLimit,
		"maze_replay_delay":    c.Maze.ReplayDelay.Duration.String(),
		"log_file":             c.Log.File,
		"cors_origins":         c.CorsOrigins,
	}
}
