package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SteamRush/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	CatalogURL string
	CartURL    string
	SteamURL   string

	// Public rate limit, requests per client IP per window. Zero disables
	// limiting (tests).
	RateLimit       int
	RateLimitWindow int
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	catalogProxy, cartProxy, steamProxy, err := buildProxies(deps, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Group(func(pr chi.Router) {
		if deps.RateLimit > 0 {
			limiter := kit.NewIPRateLimiter(deps.RateLimit, deps.RateLimitWindow)
			pr.Use(limiter.Middleware)
		}

		pr.Handle("/games", catalogProxy)
		pr.Handle("/games/*", catalogProxy)
		pr.Handle("/genres", catalogProxy)
		pr.Handle("/suggest", catalogProxy)

		pr.Handle("/carts", cartProxy)
		pr.Handle("/carts/*", cartProxy)

		pr.Handle("/api/steam", steamProxy)
	})

	return r, nil
}

func buildProxies(deps Deps, log *zap.Logger) (catalogProxy, cartProxy, steamProxy http.Handler, err error) {
	cp, err := NewReverseProxy(deps.CatalogURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	crp, err := NewReverseProxy(deps.CartURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	sp, err := NewReverseProxy(deps.SteamURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cp, crp, sp, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	backends := []struct {
		name string
		url  string
	}{
		{"catalog", deps.CatalogURL},
		{"cart", deps.CartURL},
		{"steam", deps.SteamURL},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, b := range backends {
			if err := checkReady(ctx, b.url+"/readyz"); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+b.name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, b.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
