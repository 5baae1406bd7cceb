package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/IJMacD/chess/internal/config"
	"github.com/IJMacD/chess/internal/httpapi"
	"github.com/IJMacD/chess/internal/movestore"
	"github.com/IJMacD/chess/internal/msgcat"
	"github.com/IJMacD/chess/internal/obslog"
	"github.com/IJMacD/chess/internal/render"
	"github.com/IJMacD/chess/internal/viewer"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal("store_init_error", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		logger.Fatal("messages_init_error", zap.String("dir", cfg.MessagesDir), zap.Error(err))
	}

	svc := viewer.NewService(store, catalog, render.Options{SquareSize: cfg.PNGSquareSize})
	srv := httpapi.New(svc, catalog)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listen", zap.String("addr", cfg.ListenAddr), zap.String("backend", cfg.StoreBackend))
		errCh <- srv.ListenAndServe(cfg.ListenAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutdown", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("http_serve_error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("http_shutdown_error", zap.Error(err))
	}
}

// openStore builds the configured backend and a func releasing it.
func openStore(cfg *appcfg.AppConfig) (movestore.Store, func(), error) {
	switch cfg.StoreBackend {
	case appcfg.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rdb, err := movestore.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return movestore.NewRedisStore(rdb, cfg.DocumentTTL), func() { _ = rdb.Close() }, nil
	case appcfg.BackendPostgres:
		pg, err := movestore.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	}
	return movestore.NewMemoryStore(), func() {}, nil
}
