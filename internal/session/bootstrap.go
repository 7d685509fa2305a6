package session

import (
	"net/url"
	"strconv"

	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

// Request parameter names consumed at page load.
const (
	ParamSearch   = "search"
	ParamCategory = "cat"
	ParamMaxPrice = "maxPrice"
	ParamSort     = "sort"
	ParamPage     = "page"
)

// StateFromQuery reconstructs a FilterState from request query parameters.
// A `cat` parameter is an exact single-category override and also yields the
// capitalized listing heading. Missing or invalid numerics fall back to
// defaults: the catalog's maximum price and page 1. Unknown categories and
// sort tokens degrade to no filter and default order — never an error.
func StateFromQuery(q url.Values, store *catalog.Store) (catalog.FilterState, string) {
	state := catalog.FilterState{
		Search:   q.Get(ParamSearch),
		MaxPrice: store.MaxPrice(),
		Sort:     catalog.ParseSortMode(q.Get(ParamSort)),
		Page:     1,
	}

	var heading string
	if c := catalog.Category(q.Get(ParamCategory)); c != "" && c.Valid() {
		state.Category = c
		heading = c.Title()
	}

	if v, err := strconv.ParseInt(q.Get(ParamMaxPrice), 10, 64); err == nil && v >= 0 {
		state.MaxPrice = v
	}
	if n, err := strconv.Atoi(q.Get(ParamPage)); err == nil && n >= 1 {
		state.Page = n
	}

	return state, heading
}

// FromQuery seeds a Session from request parameters and returns it alongside
// the initial query result, mirroring the one query a page runs at load.
func FromQuery(q url.Values, store *catalog.Store, opts ...Option) (*Session, catalog.ResultView) {
	s := New(store, opts...)
	state, heading := StateFromQuery(q, store)
	s.mu.Lock()
	s.state = state
	s.heading = heading
	view := s.query()
	s.mu.Unlock()
	return s, view
}
