package catalog

import "context"

// Product is a single game-key listing. The catalog is read-only at runtime:
// entries are loaded once at startup and never mutated or deleted.
type Product struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	PriceCents         int64    `json:"price_cents"`
	OriginalPriceCents int64    `json:"original_price_cents,omitempty"`
	Discount           string   `json:"discount,omitempty"`
	Genre              []string `json:"genre"`
	Tags               []string `json:"tags"`
	ImageURL           string   `json:"image_url"`
	SteamAppID         int64    `json:"steam_app_id,omitempty"`
}

type Store interface {
	Ping(ctx context.Context) error
	ListSortedByID(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
	// Genres returns the distinct genre labels across the catalog, sorted.
	Genres(ctx context.Context) ([]string, error)
}
