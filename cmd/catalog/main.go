package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamRush/internal/catalog"
	"SteamRush/internal/steam"
	"SteamRush/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8082")
	steamURL := getenv("STEAM_URL", "http://steam:8084")

	store, err := buildStore(log)
	if err != nil {
		log.Fatal("init catalog store failed", zap.Error(err))
	}

	s := &catalog.Server{
		Store: store,
		Steam: steam.NewFetcher(steamURL, steam.DefaultTTL, log),
		Log:   log,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStore(log *zap.Logger) (catalog.Store, error) {
	dsn := os.Getenv("CATALOG_DATABASE_URL")
	if dsn == "" {
		log.Info("using embedded catalog seed")
		return catalog.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	log.Info("using postgres catalog store")
	return catalog.NewPostgresStore(db), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
