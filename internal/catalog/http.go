package catalog

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"SteamRush/internal/steam"
	"SteamRush/pkg/kit"
)

const defaultSuggestLimit = 5

type Server struct {
	Store Store
	Steam *steam.Fetcher
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/games", s.list)
	r.Get("/games/{id}", s.get)
	r.Get("/games/{id}/details", s.details)
	r.Get("/genres", s.genres)
	r.Get("/suggest", s.suggest)

	return r
}

// list serves the catalog through the search pipeline. All filter params
// are optional; with none present the full catalog comes back in ID order.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad filter params", map[string]any{"reason": err.Error()})
		return
	}

	products, err := s.Store.ListSortedByID(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list games failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, Search(products, filters))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get game failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type detailsResponse struct {
	Game  Product             `json:"game"`
	Steam *steam.GameDetails  `json:"steam,omitempty"`
	Reqs  *parsedRequirements `json:"requirements,omitempty"`
}

type parsedRequirements struct {
	Minimum     steam.SystemRequirements `json:"minimum"`
	Recommended steam.SystemRequirements `json:"recommended"`
}

// details enriches a catalog entry with Steam metadata. Enrichment is best
// effort: when the fetch fails the response carries catalog data only.
func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get game failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	resp := detailsResponse{Game: p}
	if s.Steam != nil && p.SteamAppID != 0 {
		if d, ok := s.Steam.Details(r.Context(), p.SteamAppID); ok {
			resp.Steam = &d
			if d.PCRequirements.Minimum != "" || d.PCRequirements.Recommended != "" {
				resp.Reqs = &parsedRequirements{
					Minimum:     steam.ParseRequirements(d.PCRequirements.Minimum),
					Recommended: steam.ParseRequirements(d.PCRequirements.Recommended),
				}
			}
		}
	}

	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) genres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.Store.Genres(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list genres failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, genres)
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := defaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			kit.WriteError(w, r, http.StatusBadRequest, "bad limit", nil)
			return
		}
		limit = n
	}

	products, err := s.Store.ListSortedByID(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list games failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, Suggest(products, q, limit))
}

func parseFilters(r *http.Request) (Filters, error) {
	q := r.URL.Query()

	f := Filters{
		Query:  q.Get("q"),
		Genres: q["genre"],
		Sort:   SortKey(q.Get("sort")),
	}

	minRaw, maxRaw := q.Get("min_price_cents"), q.Get("max_price_cents")
	if minRaw == "" && maxRaw == "" {
		return f, nil
	}

	pr := &PriceRange{MaxCents: math.MaxInt64}
	if minRaw != "" {
		n, err := strconv.ParseInt(minRaw, 10, 64)
		if err != nil {
			return Filters{}, err
		}
		pr.MinCents = n
	}
	if maxRaw != "" {
		n, err := strconv.ParseInt(maxRaw, 10, 64)
		if err != nil {
			return Filters{}, err
		}
		pr.MaxCents = n
	}

	f.Price = pr
	return f, nil
}
