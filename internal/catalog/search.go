package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of search results.
type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNameAZ    SortKey = "name-az"
	SortNameZA    SortKey = "name-za"
	SortDiscount  SortKey = "discount"
)

// PriceRange bounds are inclusive on both ends.
type PriceRange struct {
	MinCents int64 `json:"min_cents"`
	MaxCents int64 `json:"max_cents"`
}

// Filters describes one search invocation. Zero-valued fields are
// pass-through: they never filter anything out and never error.
type Filters struct {
	Query  string
	Genres []string
	Price  *PriceRange
	Sort   SortKey
}

// Search applies the stages in a fixed order: text search, genre filter,
// price filter, sort. Each stage consumes the previous stage's output. The
// whole pipeline is pure: no stage mutates its input.
func Search(products []Product, f Filters) []Product {
	out := SearchText(products, f.Query)
	out = FilterByGenres(out, f.Genres)
	out = FilterByPrice(out, f.Price)
	return SortProducts(out, f.Sort)
}

// SearchText matches case-insensitively against titles (substring), tags
// (exact or whole word, space-bounded) and genres (exact or prefix). The tag
// word-boundary rule keeps a short query like "raft" from matching inside
// "crafting". An empty query returns the input unchanged.
func SearchText(products []Product, query string) []Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesText(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func matchesText(p Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, tag := range p.Tags {
		if matchesTag(strings.ToLower(tag), term) {
			return true
		}
	}
	for _, g := range p.Genre {
		gl := strings.ToLower(g)
		if gl == term || strings.HasPrefix(gl, term) {
			return true
		}
	}
	return false
}

func matchesTag(tag, term string) bool {
	if tag == term {
		return true
	}
	if strings.HasPrefix(tag, term+" ") {
		return true
	}
	if strings.HasSuffix(tag, " "+term) {
		return true
	}
	return strings.Contains(tag, " "+term+" ")
}

// FilterByGenres keeps products whose genre list intersects the selection.
// An empty selection means no filter.
func FilterByGenres(products []Product, genres []string) []Product {
	if len(genres) == 0 {
		return products
	}

	selected := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		selected[g] = struct{}{}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		for _, g := range p.Genre {
			if _, ok := selected[g]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// FilterByPrice keeps products with MinCents <= price <= MaxCents.
func FilterByPrice(products []Product, r *PriceRange) []Product {
	if r == nil {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.PriceCents >= r.MinCents && p.PriceCents <= r.MaxCents {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a sorted copy. Ties keep their incoming relative
// order. An empty or unknown key returns the input as-is.
func SortProducts(products []Product, key SortKey) []Product {
	var less func(a, b Product) bool

	switch key {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.PriceCents < b.PriceCents }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.PriceCents > b.PriceCents }
	case SortNameAZ:
		coll := collate.New(language.English)
		less = func(a, b Product) bool { return coll.CompareString(a.Title, b.Title) < 0 }
	case SortNameZA:
		coll := collate.New(language.English)
		less = func(a, b Product) bool { return coll.CompareString(a.Title, b.Title) > 0 }
	case SortDiscount:
		less = func(a, b Product) bool { return parseDiscount(a.Discount) > parseDiscount(b.Discount) }
	default:
		return products
	}

	out := make([]Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// parseDiscount pulls the numeric part out of a display string like "-75%".
// Anything unparseable counts as 0, so sorting never fails.
func parseDiscount(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// Suggest returns up to limit products matching the query, for typeahead.
func Suggest(products []Product, query string, limit int) []Product {
	if strings.TrimSpace(query) == "" {
		return []Product{}
	}

	out := SearchText(products, query)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Relevance scores how well a product matches a query. Higher is better.
// Used to rank suggestions when the caller wants more than input order.
func Relevance(p Product, query string) int {
	term := strings.ToLower(strings.TrimSpace(query))
	title := strings.ToLower(p.Title)

	score := 0
	if title == term {
		score += 100
	}
	if strings.HasPrefix(title, term) {
		score += 50
	}
	if strings.Contains(title, term) {
		score += 25
	}
	for _, tag := range p.Tags {
		if strings.ToLower(tag) == term {
			score += 30
			break
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			score += 10
			break
		}
	}
	return score
}
