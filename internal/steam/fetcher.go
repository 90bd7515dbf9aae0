package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultTTL is how long a fetched record stays fresh. The catalog is small
// and bounded, so the cache carries no size limit.
const DefaultTTL = 5 * time.Minute

const fetchTimeout = 5 * time.Second

var (
	errBadStatus = errors.New("steam: bad proxy status")
	errNoEntry   = errors.New("steam: no entry for app id")
)

// Fetcher retrieves app details through the same-origin proxy and keeps
// successful results in a TTL cache. Every failure mode collapses to a
// (zero, false) result: callers render catalog data only and move on.
type Fetcher struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
	log     *zap.Logger
}

func NewFetcher(baseURL string, ttl time.Duration, log *zap.Logger) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
		cache:   gocache.New(ttl, 2*ttl),
		log:     log,
	}
}

// Details returns the record for appID. A cache entry inside its TTL is
// served without network I/O. Failed fetches are never cached, so the next
// call retries. Two concurrent calls for the same uncached appID both hit
// the network; the last writer wins, which is fine because both wrote the
// same record.
func (f *Fetcher) Details(ctx context.Context, appID int64) (GameDetails, bool) {
	key := strconv.FormatInt(appID, 10)

	if v, ok := f.cache.Get(key); ok {
		return v.(GameDetails), true
	}

	d, err := f.fetch(ctx, appID, key)
	if err != nil {
		if f.log != nil {
			f.log.Warn("steam details unavailable", zap.Int64("app_id", appID), zap.Error(err))
		}
		return GameDetails{}, false
	}

	f.cache.SetDefault(key, d)
	return d, true
}

func (f *Fetcher) fetch(ctx context.Context, appID int64, key string) (GameDetails, error) {
	url := fmt.Sprintf("%s/api/steam?appid=%s", f.baseURL, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return GameDetails{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return GameDetails{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GameDetails{}, fmt.Errorf("%w: status=%d", errBadStatus, resp.StatusCode)
	}

	var envelope map[string]appEntry
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return GameDetails{}, err
	}

	entry, ok := envelope[key]
	if !ok || !entry.Success || entry.Data == nil {
		return GameDetails{}, errNoEntry
	}

	return normalize(appID, entry.Data), nil
}
