package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"vet-clinic-api/internal/adapters/auth/jwtauth"
	"vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/platform/config"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/router"
)

func main() {
	cfg := config.Load()

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{
		Log:               lg,
		DueSoonWindowDays: cfg.DueSoonWindowDays,
	}

	// Sin secret => modo dev (headers X-Debug-*), solo para desarrollo local.
	if cfg.JWTSecret != "" {
		tokens, err := jwtauth.New(jwtauth.Config{
			Secret:     cfg.JWTSecret,
			AccessTTL:  cfg.AccessTTL,
			RefreshTTL: cfg.RefreshTTL,
		})
		if err != nil {
			log.Fatalf("jwt setup error: %v", err)
		}
		opts.AuthVerifier = tokens
		opts.TokenIssuer = tokens
	} else {
		lg.Warn("JWT_SECRET not set, running in dev mode", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("postgres error: %v", err)
		}
		db = opened
		defer db.Close()
	}
	opts.DB = db

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": srv.Addr, "storage": storageKind(db)})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func storageKind(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
