package steam

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SteamRush/pkg/kit"
)

const DefaultUpstream = "https://store.steampowered.com"

const upstreamTimeout = 10 * time.Second

// upstreamCacheControl lets intermediaries hold the pass-through response
// for an hour; the Fetcher keeps its own shorter-lived cache on top.
const upstreamCacheControl = "public, max-age=3600"

// Proxy is the same-origin endpoint in front of the Steam store API. It is
// a pure pass-through: no reshaping, no business logic.
type Proxy struct {
	Upstream string
	Client   *http.Client
	Log      *zap.Logger
}

func NewProxy(upstream string, log *zap.Logger) *Proxy {
	if upstream == "" {
		upstream = DefaultUpstream
	}
	return &Proxy{
		Upstream: upstream,
		Client:   &http.Client{Timeout: upstreamTimeout},
		Log:      log,
	}
}

func (p *Proxy) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/api/steam", p.appDetails)

	return r
}

func (p *Proxy) appDetails(w http.ResponseWriter, r *http.Request) {
	appID := r.URL.Query().Get("appid")
	if appID == "" {
		// Older clients send the camelCase form.
		appID = r.URL.Query().Get("appId")
	}
	if appID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "appid is required", nil)
		return
	}

	upstream := fmt.Sprintf("%s/api/appdetails?appids=%s&cc=in&l=english", p.Upstream, url.QueryEscape(appID))

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, upstream, nil)
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := p.Client.Do(req)
	if err != nil {
		if p.Log != nil {
			p.Log.Warn("steam upstream unreachable", zap.String("app_id", appID), zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "steam unavailable", nil)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		if p.Log != nil {
			p.Log.Warn("steam upstream bad status", zap.String("app_id", appID), zap.Int("status", resp.StatusCode))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "steam unavailable", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", upstreamCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}
