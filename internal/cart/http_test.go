package cart_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"SteamRush/internal/cart"
)

func newCartTS(t *testing.T, store cart.Store) *httptest.Server {
	t.Helper()

	s := &cart.Server{Store: store, Log: zap.NewNop()}

	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "cart",
	})

	return httptest.NewServer(h)
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("unmarshal %q: %v", raw, err)
		}
	}
	return resp.StatusCode
}

func createCart(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	var c cart.Cart
	if code := doJSON(t, http.MethodPost, ts.URL+"/carts", nil, &c); code != http.StatusCreated {
		t.Fatalf("create cart status = %d, want 201", code)
	}
	if c.ID == "" {
		t.Fatal("create cart returned empty id")
	}
	return c.ID
}

func TestCartAddIsIdempotentAndFirstWriteWins(t *testing.T) {
	ts := newCartTS(t, cart.NewMemStore())
	defer ts.Close()

	id := createCart(t, ts)

	item := cart.Item{ID: "gta-v", Name: "Grand Theft Auto V", PriceCents: 29900, Image: "/i/gta.jpg"}

	var c cart.Cart
	if code := doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", item, &c); code != http.StatusOK {
		t.Fatalf("add status = %d, want 200", code)
	}
	if c.ItemCount != 1 || c.TotalCents != 29900 {
		t.Fatalf("after first add: count=%d total=%d", c.ItemCount, c.TotalCents)
	}

	// Same ID again, different price: nothing changes.
	item.PriceCents = 0
	if code := doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", item, &c); code != http.StatusOK {
		t.Fatalf("second add status = %d, want 200", code)
	}
	if c.ItemCount != 1 || c.TotalCents != 29900 {
		t.Fatalf("after duplicate add: count=%d total=%d, want 1/29900", c.ItemCount, c.TotalCents)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	ts := newCartTS(t, cart.NewMemStore())
	defer ts.Close()

	id := createCart(t, ts)

	var c cart.Cart
	doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{ID: "a", Name: "A", PriceCents: 100}, &c)
	doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{ID: "b", Name: "B", PriceCents: 200}, &c)

	if code := doJSON(t, http.MethodDelete, ts.URL+"/carts/"+id+"/items/a", nil, &c); code != http.StatusOK {
		t.Fatalf("remove status = %d, want 200", code)
	}
	if c.ItemCount != 1 || c.TotalCents != 200 {
		t.Fatalf("after remove: count=%d total=%d", c.ItemCount, c.TotalCents)
	}

	// Removing something that is not there is a no-op.
	if code := doJSON(t, http.MethodDelete, ts.URL+"/carts/"+id+"/items/zzz", nil, &c); code != http.StatusOK {
		t.Fatalf("remove absent status = %d, want 200", code)
	}
	if c.ItemCount != 1 {
		t.Fatalf("remove absent changed the cart: count=%d", c.ItemCount)
	}

	if code := doJSON(t, http.MethodDelete, ts.URL+"/carts/"+id, nil, &c); code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", code)
	}
	if c.ItemCount != 0 || c.TotalCents != 0 {
		t.Fatalf("after clear: count=%d total=%d", c.ItemCount, c.TotalCents)
	}
}

func TestCartContains(t *testing.T) {
	ts := newCartTS(t, cart.NewMemStore())
	defer ts.Close()

	id := createCart(t, ts)
	doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{ID: "a", Name: "A", PriceCents: 100}, nil)

	var res struct {
		ID     string `json:"id"`
		InCart bool   `json:"in_cart"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/carts/"+id+"/items/a", nil, &res)
	if !res.InCart {
		t.Fatal("expected a to be in cart")
	}

	doJSON(t, http.MethodGet, ts.URL+"/carts/"+id+"/items/b", nil, &res)
	if res.InCart {
		t.Fatal("expected b to not be in cart")
	}
}

func TestCartSurvivesServerRestart(t *testing.T) {
	store := cart.NewMemStore()

	ts := newCartTS(t, store)
	id := createCart(t, ts)
	doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{ID: "a", Name: "A", PriceCents: 29900}, nil)
	ts.Close()

	// A new server over the same backing store rehydrates the cart.
	ts2 := newCartTS(t, store)
	defer ts2.Close()

	var c cart.Cart
	if code := doJSON(t, http.MethodGet, ts2.URL+"/carts/"+id, nil, &c); code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", code)
	}
	if c.ItemCount != 1 || c.TotalCents != 29900 {
		t.Fatalf("rehydrated cart: count=%d total=%d", c.ItemCount, c.TotalCents)
	}
}

func TestCartAddValidation(t *testing.T) {
	ts := newCartTS(t, cart.NewMemStore())
	defer ts.Close()

	id := createCart(t, ts)

	if code := doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{Name: "no id"}, nil); code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", code)
	}
	if code := doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", cart.Item{ID: "x", Name: "X", PriceCents: -1}, nil); code != http.StatusBadRequest {
		t.Fatalf("negative price status = %d, want 400", code)
	}
	if code := doJSON(t, http.MethodPost, ts.URL+"/carts/"+id+"/items", map[string]any{"id": "x", "name": "X", "bogus": 1}, nil); code != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d, want 400", code)
	}
}

func TestUnknownCartIsEmpty(t *testing.T) {
	ts := newCartTS(t, cart.NewMemStore())
	defer ts.Close()

	var c cart.Cart
	if code := doJSON(t, http.MethodGet, ts.URL+"/carts/c_missing", nil, &c); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if c.ItemCount != 0 {
		t.Fatalf("unknown cart count = %d, want 0", c.ItemCount)
	}
}
