package main

import (
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SteamRush/internal/gateway"
	"SteamRush/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")

	deps := gateway.Deps{
		CatalogURL:      getenv("CATALOG_URL", "http://catalog:8082"),
		CartURL:         getenv("CART_URL", "http://cart:8083"),
		SteamURL:        getenv("STEAM_URL", "http://steam:8084"),
		RateLimit:       getenvInt("RATE_LIMIT", 120, log),
		RateLimitWindow: getenvInt("RATE_LIMIT_WINDOW_SECONDS", 60, log),
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int, log *zap.Logger) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatal("bad integer env var", zap.String("key", k), zap.String("value", v))
	}
	return n
}
