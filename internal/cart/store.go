package cart

import "context"

// Store persists whole carts. Load of an unknown cart yields an empty item
// list, not an error; implementations decide how corrupt payloads degrade
// (the Redis store logs and resets, it never fails the request).
type Store interface {
	Ping(ctx context.Context) error
	Load(ctx context.Context, cartID string) ([]Item, error)
	Save(ctx context.Context, cartID string, items []Item) error
}
