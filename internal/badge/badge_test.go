package badge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/mobile-zone/internal/badge"
	"github.com/xenking/mobile-zone/internal/domain/cart"
	"github.com/xenking/mobile-zone/internal/storage/localstore"
)

func newCart(t *testing.T) *cart.Service {
	t.Helper()
	return cart.NewService(localstore.NewCartStorage(localstore.NewMem()), nil, cart.DefaultConfig, nil)
}

func TestCounterPrimesFromExistingCart(t *testing.T) {
	svc := newCart(t)
	svc.Add(cart.Snapshot{ID: 1, Name: "Earbuds", Price: 1999}, 3)

	counter := badge.New(svc)
	assert.Equal(t, 3, counter.Value())
}

func TestCounterTracksMutations(t *testing.T) {
	svc := newCart(t)
	counter := badge.New(svc)
	assert.Zero(t, counter.Value())

	svc.Add(cart.Snapshot{ID: 1, Name: "Earbuds", Price: 1999}, 2)
	assert.Equal(t, 2, counter.Value())

	svc.Add(cart.Snapshot{ID: 2, Name: "Charger", Price: 1299}, 1)
	assert.Equal(t, 3, counter.Value())

	svc.SetQuantity(1, 5)
	assert.Equal(t, 6, counter.Value())

	svc.Remove(2)
	assert.Equal(t, 5, counter.Value())

	svc.Clear()
	assert.Zero(t, counter.Value())
}
