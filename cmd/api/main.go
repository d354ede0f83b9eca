package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/leranyappi/training-diary/internal/config"
	"github.com/leranyappi/training-diary/internal/db"
	"github.com/leranyappi/training-diary/internal/server"
	"github.com/leranyappi/training-diary/internal/store"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig func() config.Config
	openStore  func(config.Config) (store.Store, func(), error)
	notify     func(chan<- os.Signal, ...os.Signal)
	run        func(context.Context, config.Config, store.Store, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig: config.Load,
		openStore:  openStore,
		notify:     signal.Notify,
		run:        Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	st, closeStore, err := deps.openStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to open workout store")
		return
	}
	defer closeStore()

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, st, signals, nil); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client := db.ConnectRedis(cfg)
		if client == nil {
			return nil, nil, errors.New("redis backend requires REDIS_ADDR")
		}
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil
	case "badger", "":
		bdb, err := db.OpenBadger(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewBadgerStore(bdb), func() { _ = bdb.Close() }, nil
	default:
		return nil, nil, errors.New("unknown store backend: " + cfg.StoreBackend)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, st store.Store, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, st)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return shutdownFn(srv.App, shutdownCtx)
}
