package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/maze-server/internal/app"
	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func setupLogging(cfg *config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}
	formatter := &logrus.TextFormatter{ForceColors: true}

	for _, l := range []*logrus.Logger{log, maze.Log, repository.Log} {
		l.SetLevel(logLevel)
		l.SetFormatter(formatter)
	}

	if cfg.Log.File == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to set up log file: ", err)
	}
	for _, l := range []*logrus.Logger{log, maze.Log, repository.Log} {
		l.AddHook(hook)
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg := config.Default()
	if err := config.ReadConfig(configPath, cfg); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to read config %s: %s", configPath, err.Error())
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatal(err)
	}

	setupLogging(cfg)

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	a := app.New(log, cfg, database.Migrations)
	if err := a.Start(mainCtx); err != nil {
		log.Fatal("exit reason: ", err)
	}
}
