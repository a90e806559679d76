package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
)

var log = logrus.New()

func main() {
	configPath := flag.String("c", "/run/config.json", "config file path")
	flag.Parse()

	cfg := config.Default()
	if err := config.ReadConfig(*configPath, cfg); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to read config %s: %s", *configPath, err.Error())
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatal(err)
	}
	if cfg.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	version, dirty, err := database.Migrate(cfg.DbURL(), database.Migrations)
	if err != nil {
		log.Fatal("failed to migrate: ", err)
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
