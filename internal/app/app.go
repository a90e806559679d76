package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/middleware"
	"github.com/vancomm/maze-server/internal/repository"
)

type App struct {
	log        *logrus.Logger
	config     *config.Config
	router     *http.ServeMux
	store      repository.Store
	migrations fs.FS
	closers    []func()
}

func New(log *logrus.Logger, cfg *config.Config, migrations fs.FS) *App {
	return &App{
		log:        log,
		config:     cfg,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) setupStore(ctx context.Context) error {
	switch a.config.Storage {
	case config.StorageMemory, "":
		a.store = repository.NewMemoryStore()
	case config.StoragePostgres:
		db, err := database.ConnectAndMigrate(ctx, a.config.DbURL(), a.migrations)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.store = repository.New(db)
	default:
		return fmt.Errorf("unknown storage %q", a.config.Storage)
	}
	a.log.WithField("storage", a.config.Storage).Info("store ready")
	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.CorsOrigins),
	)
}

func (a *App) Start(ctx context.Context) error {
	defer func() {
		for _, c := range a.closers {
			c()
		}
	}()

	if err := a.setupStore(ctx); err != nil {
		return err
	}
	a.loadRoutes()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
