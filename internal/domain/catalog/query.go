package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultPageSize is the number of products shown per listing page.
const DefaultPageSize = 8

// SortMode enumerates the supported result orderings.
type SortMode string

const (
	// SortDefault preserves catalog order.
	SortDefault SortMode = "default"
	// SortPriceAsc orders by price, cheapest first.
	SortPriceAsc SortMode = "price-asc"
	// SortPriceDesc orders by price, most expensive first.
	SortPriceDesc SortMode = "price-desc"
	// SortRating orders by star rating, highest first.
	SortRating SortMode = "rating"
	// SortDiscount orders by discount ratio, deepest first.
	SortDiscount SortMode = "discount"
)

// ParseSortMode maps a request token to a SortMode, falling back to
// SortDefault for anything unrecognized.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(s); m {
	case SortPriceAsc, SortPriceDesc, SortRating, SortDiscount:
		return m
	default:
		return SortDefault
	}
}

// FilterState describes one catalog query: what to match, how to order the
// matches, and which page of them to return.
type FilterState struct {
	// Category is the single-category override from a direct navigation
	// parameter. When set it wins over Selected.
	Category Category
	// Selected holds the sidebar multi-select categories. Empty means no
	// category restriction.
	Selected []Category
	// MaxPrice is the inclusive upper price bound.
	MaxPrice int64
	// Search is matched case-insensitively as a substring of product name
	// or category. Empty matches everything.
	Search string
	// Sort selects the result ordering.
	Sort SortMode
	// Page is the 1-based page to return.
	Page int
}

// ResultView is one page of query results. It is replaced wholesale on every
// state change, never mutated in place.
type ResultView struct {
	Items        []Product
	TotalMatches int
	Page         int
	TotalPages   int
}

// Query filters, sorts, and paginates the catalog according to state. It is
// a pure function of the catalog and the state: no side effects, stable
// ordering, deterministic ties. A pageSize of 0 or less means
// DefaultPageSize. Zero matches yield TotalPages 0 and an empty page; a page
// beyond the last yields an empty page, not an error.
func (s *Store) Query(state FilterState, pageSize int) ResultView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := state.Page
	if page < 1 {
		page = 1
	}

	search := strings.ToLower(state.Search)
	if search != "" && !s.mayContain(search) {
		return ResultView{Page: page}
	}

	matched := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if matches(p, state, search) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, state.Sort)

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	var items []Product
	if start < total {
		end := min(start+pageSize, total)
		items = matched[start:end]
	}

	return ResultView{
		Items:        items,
		TotalMatches: total,
		Page:         page,
		TotalPages:   totalPages,
	}
}

func matches(p Product, state FilterState, search string) bool {
	if state.Category != "" {
		if p.Category != state.Category {
			return false
		}
	} else if len(state.Selected) > 0 && !slices.Contains(state.Selected, p.Category) {
		return false
	}

	if p.Price > state.MaxPrice {
		return false
	}

	if search != "" &&
		!strings.Contains(strings.ToLower(p.Name), search) &&
		!strings.Contains(string(p.Category), search) {
		return false
	}

	return true
}

// sortProducts orders matched in place. Every mode is stable with respect to
// catalog order; discount additionally breaks exact ratio ties by product id
// so equal discounts order deterministically.
func sortProducts(products []Product, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.Rating - a.Rating
		})
	case SortDiscount:
		slices.SortStableFunc(products, func(a, b Product) int {
			if c := b.DiscountRatio().Cmp(a.DiscountRatio()); c != 0 {
				return c
			}
			return a.ID - b.ID
		})
	}
}
