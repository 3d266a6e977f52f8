package main

import (
	"context"
	"net/http"
	"time"

	"patilog/internal/adapters/storage"
	"patilog/internal/config"
	"patilog/internal/platform/logger"
	"patilog/internal/router"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	repo, err := storage.NewRepository(context.Background(), cfg)
	if err != nil {
		log.Error("storage init failed", map[string]any{"err": err.Error()})
		return
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.NewRouter(router.Options{Repo: repo}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting editor server", map[string]any{"addr": srv.Addr, "storage": cfg.Storage})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
	}
}
