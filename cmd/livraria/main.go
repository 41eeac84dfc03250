package main

import (
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Estante/internal/config"
	"Estante/internal/livraria"
	"Estante/pkg/kit"
)

func main() {
	service := "livraria"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.LoadLivraria()

	store, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}

	s := &livraria.Server{Store: store, Log: log}

	if cfg.AdminSecret != "" {
		tok, err := livraria.NewTokenMaker(cfg.AdminSecret).New("admin", 24*time.Hour)
		if err != nil {
			log.Fatal("admin token", zap.Error(err))
		}
		log.Info("admin token for this run", zap.String("token", tok))
	}

	h := livraria.NewHandler(s, livraria.HTTPDeps{
		Log:               log,
		Service:           service,
		Registry:          prometheus.NewRegistry(),
		MetricsEnabled:    cfg.MetricsEnabled,
		MetricsToken:      cfg.MetricsToken,
		AdminSecret:       cfg.AdminSecret,
		CreateLimit:       cfg.CreateLimit,
		CreateLimitWindow: cfg.CreateLimitWindow,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStore(cfg config.Livraria, log *zap.Logger) (livraria.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory store")
		return livraria.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	log.Info("using postgres store")
	return livraria.NewPostgresStore(db), nil
}
