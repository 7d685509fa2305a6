// Package session holds the per-page filter/sort/page state and drives the
// interaction loop of the product listing: every control change recomputes a
// fresh ResultView from the catalog.
package session

import (
	"sync"
	"time"

	"github.com/xenking/mobile-zone/internal/domain/catalog"
	"github.com/xenking/mobile-zone/pkg/coalesce"
)

// DefaultSearchQuiet is the quiet interval used to coalesce search input.
const DefaultSearchQuiet = 300 * time.Millisecond

// Session owns one listing page's FilterState. State lives in memory only;
// it is seeded from request parameters at page load and dies with the page.
// A mutex guards the state because the search coalescer fires from a timer
// goroutine.
type Session struct {
	store    *catalog.Store
	pageSize int
	search   *coalesce.Scheduler

	mu      sync.Mutex
	state   catalog.FilterState
	heading string
	onView  []func(catalog.ResultView)
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize overrides catalog.DefaultPageSize.
func WithPageSize(n int) Option {
	return func(s *Session) { s.pageSize = n }
}

// WithSearchQuiet overrides the search coalescing interval.
func WithSearchQuiet(d time.Duration) Option {
	return func(s *Session) { s.search = coalesce.New(d) }
}

// New creates a Session with no filters applied: all categories, the
// catalog's maximum price as the ceiling, default order, page 1.
func New(store *catalog.Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		pageSize: catalog.DefaultPageSize,
		search:   coalesce.New(DefaultSearchQuiet),
		state: catalog.FilterState{
			MaxPrice: store.MaxPrice(),
			Sort:     catalog.SortDefault,
			Page:     1,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnView registers a callback receiving the fresh ResultView after every
// state change. The rendering collaborator subscribes here.
func (s *Session) OnView(fn func(catalog.ResultView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onView = append(s.onView, fn)
}

// Results runs the query for the current state.
func (s *Session) Results() catalog.ResultView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query()
}

// Heading returns the listing heading seeded by a category navigation
// parameter, or empty when none applies.
func (s *Session) Heading() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heading
}

// State returns a copy of the current filter state.
func (s *Session) State() catalog.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Selected = append([]catalog.Category(nil), s.state.Selected...)
	return st
}

// SetSearch updates the search text after the quiet interval, coalescing
// rapid keystrokes into a single query. Only the final value is applied.
func (s *Session) SetSearch(text string) {
	s.search.Trigger(func() {
		s.mu.Lock()
		s.state.Search = text
		s.state.Page = 1
		view := s.query()
		fns := s.onView
		s.mu.Unlock()
		publish(fns, view)
	})
}

// ToggleCategory adds or removes a sidebar category selection. Using the
// sidebar clears any single-category navigation override, as the sidebar
// does on the listing page.
func (s *Session) ToggleCategory(c catalog.Category) {
	s.mu.Lock()
	s.state.Category = ""
	s.heading = ""
	if i := indexCategory(s.state.Selected, c); i >= 0 {
		s.state.Selected = append(s.state.Selected[:i], s.state.Selected[i+1:]...)
	} else {
		s.state.Selected = append(s.state.Selected, c)
	}
	s.applyLocked()
}

// SetMaxPrice moves the price ceiling.
func (s *Session) SetMaxPrice(max int64) {
	s.mu.Lock()
	s.state.MaxPrice = max
	s.applyLocked()
}

// SetSort changes the result ordering.
func (s *Session) SetSort(mode catalog.SortMode) {
	s.mu.Lock()
	s.state.Sort = mode
	s.applyLocked()
}

// GoToPage moves to page n, clamped to [1, TotalPages]. The engine itself
// only slices; clamping here keeps out-of-range requests total.
func (s *Session) GoToPage(n int) {
	s.mu.Lock()
	view := s.query()
	switch {
	case n < 1 || view.TotalPages == 0:
		n = 1
	case n > view.TotalPages:
		n = view.TotalPages
	}
	s.state.Page = n
	view = s.query()
	fns := s.onView
	s.mu.Unlock()
	publish(fns, view)
}

// ResetFilters restores the no-filter state: no categories, full price
// range, empty search, default order, page 1.
func (s *Session) ResetFilters() {
	s.search.Stop()
	s.mu.Lock()
	s.state = catalog.FilterState{
		MaxPrice: s.store.MaxPrice(),
		Sort:     catalog.SortDefault,
		Page:     1,
	}
	s.heading = ""
	s.applyLocked()
}

// applyLocked resets to page 1, queries, and publishes. Callers hold s.mu;
// it unlocks before invoking subscribers.
func (s *Session) applyLocked() {
	s.state.Page = 1
	view := s.query()
	fns := s.onView
	s.mu.Unlock()
	publish(fns, view)
}

func (s *Session) query() catalog.ResultView {
	return s.store.Query(s.state, s.pageSize)
}

func publish(fns []func(catalog.ResultView), view catalog.ResultView) {
	for _, fn := range fns {
		fn(view)
	}
}

func indexCategory(cats []catalog.Category, c catalog.Category) int {
	for i, have := range cats {
		if have == c {
			return i
		}
	}
	return -1
}
