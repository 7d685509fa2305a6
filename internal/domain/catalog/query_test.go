package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

func baseState(store *catalog.Store) catalog.FilterState {
	return catalog.FilterState{
		MaxPrice: store.MaxPrice(),
		Sort:     catalog.SortDefault,
		Page:     1,
	}
}

func ids(products []catalog.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, catalog.SortPriceAsc, catalog.ParseSortMode("price-asc"))
	assert.Equal(t, catalog.SortDiscount, catalog.ParseSortMode("discount"))
	assert.Equal(t, catalog.SortDefault, catalog.ParseSortMode(""))
	assert.Equal(t, catalog.SortDefault, catalog.ParseSortMode("bogus"))
}

func TestQueryNoFilters(t *testing.T) {
	store := seedStore(t)

	view := store.Query(baseState(store), 0)

	assert.Equal(t, 16, view.TotalMatches)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 1, view.Page)
	// Default page size, catalog order preserved.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(view.Items))
}

func TestQueryCategoryOverride(t *testing.T) {
	store := seedStore(t)

	state := baseState(store)
	state.Category = catalog.CategoryChargers
	// The override wins even when the sidebar selection disagrees.
	state.Selected = []catalog.Category{catalog.CategoryCovers}

	view := store.Query(state, 0)
	assert.Equal(t, []int{2, 7, 10, 14}, ids(view.Items))
	assert.Equal(t, 4, view.TotalMatches)
	assert.Equal(t, 1, view.TotalPages)
}

func TestQuerySelectedCategories(t *testing.T) {
	store := seedStore(t)

	state := baseState(store)
	state.Selected = []catalog.Category{catalog.CategoryDisplay, catalog.CategoryBattery}

	view := store.Query(state, 0)
	assert.Equal(t, []int{6, 13, 16}, ids(view.Items))
}

func TestQueryMaxPrice(t *testing.T) {
	store := seedStore(t)

	state := baseState(store)
	state.MaxPrice = 399

	view := store.Query(state, 0)
	assert.Equal(t, []int{3, 7, 11, 15}, ids(view.Items))

	// Tightening the bound can only shrink the match set.
	state.MaxPrice = 299
	tighter := store.Query(state, 0)
	assert.Less(t, tighter.TotalMatches, view.TotalMatches)
	for _, p := range tighter.Items {
		assert.LessOrEqual(t, p.Price, int64(299))
	}

	state.MaxPrice = 0
	assert.Zero(t, store.Query(state, 0).TotalMatches)
}

func TestQuerySearch(t *testing.T) {
	store := seedStore(t)

	t.Run("matches name and category", func(t *testing.T) {
		state := baseState(store)
		state.Search = "CHARGER"

		// Three products carry "Charger" in the name; the braided cable
		// matches through its "chargers" category.
		view := store.Query(state, 0)
		assert.Equal(t, []int{2, 7, 10, 14}, ids(view.Items))
	})

	t.Run("no match", func(t *testing.T) {
		state := baseState(store)
		state.Search = "zzgram"

		view := store.Query(state, 0)
		assert.Zero(t, view.TotalMatches)
		assert.Zero(t, view.TotalPages)
		assert.Empty(t, view.Items)
		assert.Equal(t, 1, view.Page)
	})

	t.Run("short search still scans", func(t *testing.T) {
		state := baseState(store)
		state.Search = "tw"

		view := store.Query(state, 0)
		require.Equal(t, 1, view.TotalMatches)
		assert.Equal(t, "TWS Earbuds Pro", view.Items[0].Name)
	})

	t.Run("combines with category filter", func(t *testing.T) {
		state := baseState(store)
		state.Search = "charger"
		state.Selected = []catalog.Category{catalog.CategoryChargers}
		state.MaxPrice = 700

		view := store.Query(state, 0)
		assert.Equal(t, []int{7, 14}, ids(view.Items))
	})
}

func TestQuerySort(t *testing.T) {
	store := seedStore(t)

	t.Run("price ascending is stable", func(t *testing.T) {
		state := baseState(store)
		state.Sort = catalog.SortPriceAsc

		view := store.Query(state, 16)
		// Items 7 and 11 share a price; catalog order decides.
		assert.Equal(t, []int{15, 7, 11, 3, 14, 13, 8, 10, 2, 4, 16, 12, 5, 6, 9, 1}, ids(view.Items))
	})

	t.Run("price descending", func(t *testing.T) {
		state := baseState(store)
		state.Sort = catalog.SortPriceDesc

		view := store.Query(state, 16)
		prev := view.Items[0].Price
		for _, p := range view.Items[1:] {
			assert.GreaterOrEqual(t, prev, p.Price)
			prev = p.Price
		}
	})

	t.Run("rating highest first", func(t *testing.T) {
		state := baseState(store)
		state.Sort = catalog.SortRating

		view := store.Query(state, 16)
		prev := view.Items[0].Rating
		for _, p := range view.Items[1:] {
			assert.GreaterOrEqual(t, prev, p.Rating)
			prev = p.Rating
		}
		// Equal ratings keep catalog order.
		assert.Equal(t, 1, view.Items[0].ID)
	})

	t.Run("discount deepest first with id tie-break", func(t *testing.T) {
		state := baseState(store)
		state.Sort = catalog.SortDiscount

		view := store.Query(state, 16)
		// The premium headphones save 4500 of 8999, the deepest cut.
		assert.Equal(t, 9, view.Items[0].ID)

		// Items 7 and 11 discount at exactly 200/499; the lower id wins.
		pos := map[int]int{}
		for i, p := range view.Items {
			pos[p.ID] = i
		}
		assert.Equal(t, pos[7]+1, pos[11])
	})
}

func TestQueryPagination(t *testing.T) {
	store := seedStore(t)

	t.Run("second page", func(t *testing.T) {
		state := baseState(store)
		state.Page = 2

		view := store.Query(state, 8)
		assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16}, ids(view.Items))
		assert.Equal(t, 2, view.Page)
		assert.Equal(t, 2, view.TotalPages)
	})

	t.Run("page beyond the last is empty", func(t *testing.T) {
		state := baseState(store)
		state.Page = 3

		view := store.Query(state, 8)
		assert.Empty(t, view.Items)
		assert.Equal(t, 3, view.Page)
		assert.Equal(t, 2, view.TotalPages)
		assert.Equal(t, 16, view.TotalMatches)
	})

	t.Run("page below one clamps to first", func(t *testing.T) {
		state := baseState(store)
		state.Page = 0

		view := store.Query(state, 8)
		assert.Equal(t, 1, view.Page)
		assert.Len(t, view.Items, 8)
	})

	t.Run("custom page size", func(t *testing.T) {
		state := baseState(store)

		view := store.Query(state, 5)
		assert.Len(t, view.Items, 5)
		assert.Equal(t, 4, view.TotalPages)
	})
}
