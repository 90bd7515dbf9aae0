package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SteamRush/internal/catalog"
)

func fixtureProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "gta-v", Title: "Grand Theft Auto V", PriceCents: 29900, Discount: "-75%",
			Genre: []string{"Action", "Adventure"}, Tags: []string{"open world", "crime"}},
		{ID: "ocean-drift", Title: "Ocean Drift", PriceCents: 49900, Discount: "-90%",
			Genre: []string{"Survival"}, Tags: []string{"raft building", "ocean"}},
		{ID: "factory-sim", Title: "Factory Sim", PriceCents: 49900, Discount: "-67%",
			Genre: []string{"Simulation"}, Tags: []string{"crafting", "automation"}},
		{ID: "night-rally", Title: "Night Rally", PriceCents: 89900,
			Genre: []string{"Racing"}, Tags: []string{"cars", "arcade racing"}},
	}
}

func TestSearchTextTitleSubstring(t *testing.T) {
	got := catalog.SearchText(fixtureProducts(), "gta")

	require.Len(t, got, 1)
	assert.Equal(t, "gta-v", got[0].ID)
}

func TestSearchTextCaseInsensitive(t *testing.T) {
	got := catalog.SearchText(fixtureProducts(), "GRAND THEFT")

	require.Len(t, got, 1)
	assert.Equal(t, "gta-v", got[0].ID)
}

func TestSearchTextTagWordBoundary(t *testing.T) {
	// "raft" must match the tag "raft building" but not "crafting".
	got := catalog.SearchText(fixtureProducts(), "raft")

	require.Len(t, got, 1)
	assert.Equal(t, "ocean-drift", got[0].ID)
}

func TestSearchTextTagMatchVariants(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Title: "Alpha", Tags: []string{"racing"}},
		{ID: "b", Title: "Beta", Tags: []string{"racing wheel support"}},
		{ID: "c", Title: "Gamma", Tags: []string{"arcade racing"}},
		{ID: "d", Title: "Delta", Tags: []string{"fast arcade racing fun"}},
		{ID: "e", Title: "Epsilon", Tags: []string{"embracing"}},
	}

	got := catalog.SearchText(products, "racing")

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestSearchTextGenrePrefix(t *testing.T) {
	got := catalog.SearchText(fixtureProducts(), "rac")

	require.Len(t, got, 1)
	assert.Equal(t, "night-rally", got[0].ID)
}

func TestSearchTextEmptyQueryPassesThrough(t *testing.T) {
	products := fixtureProducts()

	assert.Equal(t, products, catalog.SearchText(products, ""))
	assert.Equal(t, products, catalog.SearchText(products, "   "))
}

func TestSearchTextNoMatchIsEmptyNotError(t *testing.T) {
	got := catalog.SearchText(fixtureProducts(), "zzzzz")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByGenres(t *testing.T) {
	products := fixtureProducts()

	got := catalog.FilterByGenres(products, []string{"Survival", "Racing"})
	require.Len(t, got, 2)
	assert.Equal(t, "ocean-drift", got[0].ID)
	assert.Equal(t, "night-rally", got[1].ID)

	assert.Equal(t, products, catalog.FilterByGenres(products, nil))
	assert.Equal(t, products, catalog.FilterByGenres(products, []string{}))
}

func TestFilterByPriceInclusiveBounds(t *testing.T) {
	products := fixtureProducts()

	got := catalog.FilterByPrice(products, &catalog.PriceRange{MinCents: 29900, MaxCents: 29900})
	require.Len(t, got, 1)
	assert.Equal(t, "gta-v", got[0].ID)

	assert.Equal(t, products, catalog.FilterByPrice(products, nil))
}

func TestSortProductsPrice(t *testing.T) {
	low := catalog.SortProducts(fixtureProducts(), catalog.SortPriceLow)
	assert.Equal(t, "gta-v", low[0].ID)
	assert.Equal(t, "night-rally", low[len(low)-1].ID)

	high := catalog.SortProducts(fixtureProducts(), catalog.SortPriceHigh)
	assert.Equal(t, "night-rally", high[0].ID)
}

func TestSortProductsPriceStableOnTies(t *testing.T) {
	// ocean-drift and factory-sim share a price; input order must hold.
	got := catalog.SortProducts(fixtureProducts(), catalog.SortPriceLow)

	require.Len(t, got, 4)
	assert.Equal(t, "ocean-drift", got[1].ID)
	assert.Equal(t, "factory-sim", got[2].ID)
}

func TestSortProductsName(t *testing.T) {
	az := catalog.SortProducts(fixtureProducts(), catalog.SortNameAZ)
	assert.Equal(t, "Factory Sim", az[0].Title)
	assert.Equal(t, "Ocean Drift", az[len(az)-1].Title)

	za := catalog.SortProducts(fixtureProducts(), catalog.SortNameZA)
	assert.Equal(t, "Ocean Drift", za[0].Title)
}

func TestSortProductsDiscountDescending(t *testing.T) {
	got := catalog.SortProducts(fixtureProducts(), catalog.SortDiscount)

	require.Len(t, got, 4)
	assert.Equal(t, "-90%", got[0].Discount)
	assert.Equal(t, "-75%", got[1].Discount)
	assert.Equal(t, "-67%", got[2].Discount)
	// No discount string parses as 0 and sorts last.
	assert.Equal(t, "night-rally", got[3].ID)
}

func TestSortProductsUnknownKeyPassesThrough(t *testing.T) {
	products := fixtureProducts()

	assert.Equal(t, products, catalog.SortProducts(products, ""))
	assert.Equal(t, products, catalog.SortProducts(products, "nope"))
}

func TestSortProductsDoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	_ = catalog.SortProducts(products, catalog.SortPriceLow)

	assert.Equal(t, fixtureProducts(), products)
}

func TestSearchComposesStagesInOrder(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Title: "Space Race", PriceCents: 100, Genre: []string{"Racing"}},
		{ID: "b", Title: "Space Race II", PriceCents: 300, Genre: []string{"Racing"}},
		{ID: "c", Title: "Space Farm", PriceCents: 100, Genre: []string{"Simulation"}},
		{ID: "d", Title: "Dungeon Race", PriceCents: 200, Genre: []string{"Racing"}},
	}

	got := catalog.Search(products, catalog.Filters{
		Query:  "space",
		Genres: []string{"Racing"},
		Price:  &catalog.PriceRange{MinCents: 0, MaxCents: 300},
		Sort:   catalog.SortPriceHigh,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestSearchIsDeterministic(t *testing.T) {
	f := catalog.Filters{Query: "a", Sort: catalog.SortPriceLow}

	first := catalog.Search(fixtureProducts(), f)
	second := catalog.Search(fixtureProducts(), f)

	assert.Equal(t, first, second)
}

func TestSearchEmptyFiltersReturnInputUnchanged(t *testing.T) {
	products := fixtureProducts()

	assert.Equal(t, products, catalog.Search(products, catalog.Filters{}))
}

func TestSuggest(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Title: "Racer One"},
		{ID: "b", Title: "Racer Two"},
		{ID: "c", Title: "Racer Three"},
	}

	assert.Len(t, catalog.Suggest(products, "racer", 2), 2)
	assert.Empty(t, catalog.Suggest(products, "", 5))
}

func TestRelevance(t *testing.T) {
	p := catalog.Product{Title: "Raft", Tags: []string{"raft", "survival crafting"}}

	exact := catalog.Relevance(p, "raft")
	prefix := catalog.Relevance(p, "ra")
	none := catalog.Relevance(p, "zelda")

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, 0)
	assert.Zero(t, none)
}
