// Package badge derives the cart badge count from cart changes.
package badge

import (
	"sync/atomic"

	"github.com/xenking/mobile-zone/internal/domain/cart"
)

// Counter tracks the total cart item count. It recomputes synchronously on
// every cart mutation; any number of badges may read Value concurrently.
type Counter struct {
	cart  *cart.Service
	value atomic.Int64
}

// New creates a Counter subscribed to the given cart service and primes it
// with the current count.
func New(c *cart.Service) *Counter {
	ctr := &Counter{cart: c}
	c.Subscribe(ctr.refresh)
	ctr.refresh()
	return ctr
}

// Value returns the latest item count.
func (c *Counter) Value() int {
	return int(c.value.Load())
}

func (c *Counter) refresh() {
	c.value.Store(int64(c.cart.ItemCount()))
}
