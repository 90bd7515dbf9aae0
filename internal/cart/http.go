package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"SteamRush/pkg/kit"
)

const maxAddBody = 64 << 10

type Server struct {
	Store Store
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

	r.Post("/carts", s.create)
	r.Route("/carts/{cartID}", func(rr chi.Router) {
		rr.Get("/", s.get)
		rr.Delete("/", s.clear)
		rr.Post("/items", s.addItem)
		rr.Get("/items/{itemID}", s.containsItem)
		rr.Delete("/items/{itemID}", s.removeItem)
	})

	return r
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	id := "c_" + uuid.NewString()

	if err := s.Store.Save(r.Context(), id, []Item{}); err != nil {
		s.logStoreErr("create cart failed", id, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, newCart(id, nil))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	items, err := s.Store.Load(r.Context(), cartID)
	if err != nil {
		s.logStoreErr("load cart failed", cartID, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, newCart(cartID, items))
}

// addItem is idempotent per item ID: adding an existing ID changes nothing,
// including the stored price and name.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	it, err := decodeItem(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if it.ID == "" || it.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "id and name required", nil)
		return
	}
	if it.PriceCents < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	items, err := s.Store.Load(r.Context(), cartID)
	if err != nil {
		s.logStoreErr("load cart failed", cartID, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	items, changed := addItem(items, it)
	if changed {
		if err := s.Store.Save(r.Context(), cartID, items); err != nil {
			s.logStoreErr("save cart failed", cartID, err)
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}
	}

	kit.WriteJSON(w, http.StatusOK, newCart(cartID, items))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	itemID := chi.URLParam(r, "itemID")

	items, err := s.Store.Load(r.Context(), cartID)
	if err != nil {
		s.logStoreErr("load cart failed", cartID, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	items, changed := removeItem(items, itemID)
	if changed {
		if err := s.Store.Save(r.Context(), cartID, items); err != nil {
			s.logStoreErr("save cart failed", cartID, err)
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
			return
		}
	}

	kit.WriteJSON(w, http.StatusOK, newCart(cartID, items))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	if err := s.Store.Save(r.Context(), cartID, []Item{}); err != nil {
		s.logStoreErr("clear cart failed", cartID, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, newCart(cartID, nil))
}

func (s *Server) containsItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	itemID := chi.URLParam(r, "itemID")

	items, err := s.Store.Load(r.Context(), cartID)
	if err != nil {
		s.logStoreErr("load cart failed", cartID, err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"id":      itemID,
		"in_cart": containsItem(items, itemID),
	})
}

func decodeItem(w http.ResponseWriter, r *http.Request) (Item, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var it Item
	if err := dec.Decode(&it); err != nil {
		return Item{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Item{}, errors.New("extra data after json object")
	}

	return it, nil
}

func (s *Server) logStoreErr(msg, cartID string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err), zap.String("cart_id", cartID))
	}
}
