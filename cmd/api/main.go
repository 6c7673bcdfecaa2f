package main

import (
	"net/http"
	"os"
	"time"

	"pet-health-tracker/internal/platform/config"
	"pet-health-tracker/internal/platform/logger"
	"pet-health-tracker/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	r := router.NewRouter(router.Options{JWTSecret: cfg.JWTSecret})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":    srv.Addr,
		"storage": storageMode(cfg),
		"auth":    authMode(cfg),
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func storageMode(cfg config.Config) string {
	if cfg.DBDSN != "" {
		return "postgres"
	}
	return "memory"
}

func authMode(cfg config.Config) string {
	if cfg.JWTSecret != "" {
		return "jwt"
	}
	return "dev"
}
